// Package validation implements the validator/normalizer stage. It checks the
// shape of every merged record against a kin-openapi schema, enforces the
// required fields and the single-correct-choice invariant, and returns a
// normalized model.QuestionSet. Validation is fail-fast: the first violation
// is returned as a *bank.SchemaError naming the question id and field.
package validation
