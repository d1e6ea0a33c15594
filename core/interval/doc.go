// Package interval provides pure helpers over half-open time ranges:
// construction, merging, subtraction, intersection and quantization into
// fixed-length units.
package interval
