// Package beamer renders an arranged question set as a LaTeX Beamer deck: a
// title frame followed by one frame per question, with the correct choice and
// any explanation revealed on a second overlay.
package beamer
