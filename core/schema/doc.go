/*
Package schema defines the declarative model intermediate representation.

A model describes one persisted entity: its fields, validation rules,
relations to other models, access policy, and lifecycle configuration.
Models are declared once (typically in YAML, one file per model), registered
into the process-wide registry, and compiled into the derived schema artifact
consumed by the storage, request-validation, and authorization collaborators.

# Model Definition

A minimal model definition in YAML:

	model: user
	fields:
	  - { name: id, type: integer, primary_key: true, auto_increment: true }
	  - { name: email, type: string, required: true, unique: true,
	      rules: [{ kind: email }] }
	  - { name: name, type: string, required: true }
	relations:
	  - { name: posts, kind: has_many, target: post }
	access:
	  create: [admin]
	  read: [admin, user]
	config:
	  timestamps: true

# Field Types

The type set is closed: integer, string, text, boolean, date, datetime, json.
Unknown types are rejected at validation time, before registration.

# Validation Rules

Rules are descriptive at this layer; enforcement belongs to the
request-validation collaborator. Each rule is a tagged variant:
required, max_length (with a non-negative length), pattern (with a regex
that must compile), email, url.

# Parsing

Load model definitions from YAML:

	m, err := schema.ParseFile("models/user.yaml")
	models, err := schema.ParseDir("models/")

All models are validated on parse. Invalid models return an error.
*/
package schema
