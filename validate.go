package weave

// Validator checks an output block after it has been parsed from a model
// response and before the agent returns it. Register one per output block
// with [Agent.WithOutputValidator].
//
// Validators are for content rules the type label alone cannot express:
// schema compliance (see the schema subpackage), business constraints,
// sanitation. A rejection fails the whole call with a [*ValidationError];
// the agent does not feed the rejection back to the model.
type Validator interface {
	// Name identifies the validator in errors, e.g. "schema" or "pii_filter".
	Name() string

	// Validate returns nil to accept the block, or an error describing the
	// rejection.
	Validate(block Block) error
}
