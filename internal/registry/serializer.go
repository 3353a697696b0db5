// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package registry

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/MKhiriev/go-peer-sync/models"
)

// modelTagKey is the payload key carrying the entity's registered type name.
const modelTagKey = "model"

// syncTag marks struct fields that participate in serialization. Fields
// without the tag, or tagged "-", are never exposed.
const syncTag = "sync"

// SerializeOptions restricts the serialized field set. When Fields is
// non-empty, only the named fields are emitted and Exclude is ignored
// (include wins when both are given).
type SerializeOptions struct {
	Fields  []string
	Exclude []string
}

// Serialize produces the canonical payload for an entity: a JSON object
// mapping sync-tagged field names to their current values, plus the "model"
// type tag required for deserialization.
//
// encoding/json sorts object keys, so serialization is a deterministic
// function of field values plus the type tag — the property version tagging
// relies on.
func (r *Registry) Serialize(entity models.Syncable, opts *SerializeOptions) (json.RawMessage, error) {
	value := reflect.Indirect(reflect.ValueOf(entity))
	if value.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: entity is not a struct", ErrInvalidPayload)
	}

	include := make(map[string]bool, 0)
	if opts != nil {
		for _, name := range opts.Fields {
			include[name] = true
		}
	}
	exclude := make(map[string]bool, 0)
	if opts != nil && len(include) == 0 {
		for _, name := range opts.Exclude {
			exclude[name] = true
		}
	}

	data := make(map[string]any)
	collectSyncFields(value, func(name string, field reflect.Value) {
		if len(include) > 0 && !include[name] {
			return
		}
		if exclude[name] {
			return
		}
		data[name] = field.Interface()
	})

	data[modelTagKey] = entity.ModelName()

	payload, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}

	return payload, nil
}

// Deserialize reconstructs an entity from a payload using the type tag and
// the registered factory. Unknown payload fields are ignored (forward
// compatibility); fields missing from the payload keep the type's defaults.
func (r *Registry) Deserialize(payload json.RawMessage) (models.Syncable, error) {
	model, fields, err := splitPayload(payload)
	if err != nil {
		return nil, err
	}

	reg, err := r.Lookup(model)
	if err != nil {
		return nil, err
	}

	entity := reg.New()
	if err = populate(entity, fields); err != nil {
		return nil, err
	}

	return entity, nil
}

// DeserializeInto reconstructs a payload into an existing target entity.
// A payload whose type tag disagrees with the target's model name is
// rejected with [ErrTypeMismatch] — never silently accepted.
func (r *Registry) DeserializeInto(payload json.RawMessage, target models.Syncable) error {
	model, fields, err := splitPayload(payload)
	if err != nil {
		return err
	}

	if model != target.ModelName() {
		return fmt.Errorf("%w: payload %q, target %q", ErrTypeMismatch, model, target.ModelName())
	}

	return populate(target, fields)
}

// ModelOf extracts the type tag from a payload without deserializing it.
func ModelOf(payload json.RawMessage) (string, error) {
	model, _, err := splitPayload(payload)
	return model, err
}

// splitPayload decodes the payload object and extracts the type tag.
func splitPayload(payload json.RawMessage) (string, map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(payload, &fields); err != nil {
		return "", nil, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	rawModel, ok := fields[modelTagKey]
	if !ok {
		return "", nil, fmt.Errorf("%w: missing %q type tag", ErrInvalidPayload, modelTagKey)
	}

	var model string
	if err := json.Unmarshal(rawModel, &model); err != nil || model == "" {
		return "", nil, fmt.Errorf("%w: malformed %q type tag", ErrInvalidPayload, modelTagKey)
	}

	delete(fields, modelTagKey)

	return model, fields, nil
}

// populate sets every payload field known to the target's field set,
// ignoring the rest.
func populate(target models.Syncable, fields map[string]json.RawMessage) error {
	value := reflect.Indirect(reflect.ValueOf(target))
	if value.Kind() != reflect.Struct {
		return fmt.Errorf("%w: target is not a struct", ErrInvalidPayload)
	}

	known := make(map[string]reflect.Value)
	collectSyncFields(value, func(name string, field reflect.Value) {
		known[name] = field
	})

	for name, raw := range fields {
		field, ok := known[name]
		if !ok || !field.CanAddr() {
			continue
		}
		if err := json.Unmarshal(raw, field.Addr().Interface()); err != nil {
			return fmt.Errorf("decode field %q: %w", name, err)
		}
	}

	return nil
}

// collectSyncFields walks the struct's sync-tagged fields, descending into
// anonymous embedded structs (e.g. [models.Base]) so their fields appear
// under their own tag names.
func collectSyncFields(value reflect.Value, visit func(name string, field reflect.Value)) {
	valueType := value.Type()
	for i := 0; i < valueType.NumField(); i++ {
		structField := valueType.Field(i)
		field := value.Field(i)

		if structField.Anonymous {
			embedded := reflect.Indirect(field)
			if embedded.Kind() == reflect.Struct {
				collectSyncFields(embedded, visit)
			}
			continue
		}

		if !structField.IsExported() {
			continue
		}

		name := structField.Tag.Get(syncTag)
		if name == "" || name == "-" {
			continue
		}

		visit(name, field)
	}
}
