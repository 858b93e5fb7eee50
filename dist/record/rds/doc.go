// Package rds reads and writes R serialization streams: the format behind
// saveRDS/readRDS and save/load. Both XDR and native binary layouts of
// serialization versions 2 and 3 are decoded, inside gzip, bzip2 or xz
// containers. Only data objects are supported; closures, byte code and
// similar language objects are rejected with UnsupportedTypeError.
package rds
