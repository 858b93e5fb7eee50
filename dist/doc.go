// Package dist turns serialized R distribution records into ready-to-sample
// distributions. Its central Service reads a record through afs, translates
// the R distribution name and parameter names through two lookup tables and
// instantiates the matching family from an explicit registry of gonum
// backed constructors.
package dist
