package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/dialect/entsql"
	"entgo.io/ent/schema"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// APIRequestEvent records one call to the fitness backend.
type APIRequestEvent struct {
	ent.Schema
}

func (APIRequestEvent) Annotations() []schema.Annotation {
	return []schema.Annotation{
		entsql.Annotation{Table: "api_request_events"},
	}
}

func (APIRequestEvent) Mixin() []ent.Mixin {
	return []ent.Mixin{EventMixin{}}
}

func (APIRequestEvent) Fields() []ent.Field {
	return []ent.Field{
		field.String("request_id").
			Comment("Value of the X-Request-ID header sent with the call"),
		field.String("method"),
		field.String("route").
			Comment("Route template, e.g. /profiles/{id}/workout-plan"),
		field.Int("status").
			Default(0).
			Comment("HTTP status, 0 when no response arrived"),
		field.Int64("latency_ms").
			Default(0),
		field.Bool("ok").
			Default(false),
		field.String("error_message").
			Default(""),
	}
}

func (APIRequestEvent) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("route"),
	}
}
