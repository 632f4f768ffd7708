// Package model defines the typed question model produced by the validator and
// consumed by the arranger and renderers, together with the immutable
// GenerationOptions that parameterise a deck. Choice labels (A, B, C, …) are
// positional and derived with ChoiceLabel after arrangement; they are never
// stored on the model.
package model
