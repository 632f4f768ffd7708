// Package arrange shuffles the answer choices of a normalized question set.
// A seeded Arranger reproduces the same arrangement for the same input; an
// unseeded one draws a fresh arrangement every time.
package arrange
