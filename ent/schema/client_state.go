package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
)

// ClientState is the key/value table holding the session token, profile,
// workout plan and last option catalog as JSON strings.
type ClientState struct {
	ent.Schema
}

func (ClientState) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "client_state"},
	}
}

func (ClientState) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("key").
			NotEmpty().
			Immutable(),
		field.Text("value"),
		field.String("updated_at").
			Comment("RFC 3339 time of the last write"),
	}
}
