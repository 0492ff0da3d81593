// Package linkstate compares a source tree with the target it is linked
// into and classifies the result.
//
// The Walker pairs every terminal entry of a source tree with the path of
// the same name under the target. The Classifier turns those findings, a
// few existence checks and a simulated link run into exactly one Status per
// (source, target) pair, trying the checks in a fixed order:
//
//	source not found > target not found > permission denied >
//	broken links > real files > conflicts > ok
//
// A Report folds many statuses into per-target groups and a Summary of
// ok, warning and error counts.
//
// Nothing in this package writes to the filesystem.
package linkstate
