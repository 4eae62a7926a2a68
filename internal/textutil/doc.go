// Package textutil provides Unicode helpers for Chinese text: CJK
// normalization and character extraction shared by the dataset indexes, the
// generators, and the coverage report.
package textutil
