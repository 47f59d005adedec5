// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package core

import (
	"errors"
	"fmt"
)

// Record validation errors
var (
	// ErrInvalidRecord indicates a Record failed validation.
	ErrInvalidRecord = errors.New("invalid index record")

	// ErrEmptyFieldName indicates a field has no name.
	ErrEmptyFieldName = errors.New("field name cannot be empty")

	// ErrDuplicateField indicates two fields share a name.
	ErrDuplicateField = errors.New("duplicate field name")

	// ErrInvalidFieldKind indicates an unknown FieldKind.
	ErrInvalidFieldKind = errors.New("invalid field kind")
)

// ValidateRecord validates a Record before it is written.
//
// Validation rules:
//   - Every field has a non-empty, unique name
//   - Every field has a known kind
//   - Positions and TermVector are only set on text fields
func ValidateRecord(rec *Record) error {
	if rec == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidRecord)
	}

	seen := make(map[string]struct{}, len(rec.Fields))
	for _, f := range rec.Fields {
		if f.Name == "" {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, ErrEmptyFieldName)
		}
		if _, dup := seen[f.Name]; dup {
			return fmt.Errorf("%w: %w: %q", ErrInvalidRecord, ErrDuplicateField, f.Name)
		}
		seen[f.Name] = struct{}{}

		if err := ValidateFieldKind(f.Kind); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidRecord, err)
		}
		if f.Kind != KindText && (f.Positions || f.TermVector) {
			return fmt.Errorf("%w: field %q is %s but requests positions or term vectors",
				ErrInvalidRecord, f.Name, f.Kind)
		}
	}
	return nil
}

// ValidateFieldKind checks that k is one of the known kinds.
func ValidateFieldKind(k FieldKind) error {
	if k != KindKeyword && k != KindStored && k != KindText {
		return fmt.Errorf("%w: %d", ErrInvalidFieldKind, k)
	}
	return nil
}
