// Package dataprocessing loads decomposition panels from external
// files.
//
// A panel arrives as a table with a year column, a sector column, an
// aggregate column and one column per driver. PanelSchema names those
// columns; the CSV and XLSX readers map them by header and produce the
// typed panel consumed by the lmdi package. Readers fail fast on
// malformed values with file and line context, since a silently skipped
// row would misalign sectors between years.
package dataprocessing
