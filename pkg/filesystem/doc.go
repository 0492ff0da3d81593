// Package filesystem provides the read-only filesystem view amu inspects.
//
// The tree walker and status classifier only ever look at the filesystem;
// every mutation of managed links goes through the external link tool. FS
// is therefore limited to the stat and directory-listing calls they need.
package filesystem
