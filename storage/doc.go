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

// Package storage provides the index store abstraction layer for corpora.
//
// This package defines the writer and reader contracts that decouple the
// indexing pipeline from the store implementation, along with the binary
// serialization of stored records, postings and term vectors.
//
// # Constructor Return Type Pattern
//
// Public constructors in implementation packages return the interfaces
// defined here:
//
//	w, err := badger.OpenWriter(path, storage.WriterOptions{Mode: storage.ModeCreate})  // storage.IndexWriter
//	r, err := badger.OpenReader(path)                                                  // storage.IndexReader
//
// # Fidelity
//
// Every text field is tokenized and searchable. Positional postings (token
// positions and character offsets) and per-document term vectors are
// independently opt-in through core.Field flags.
//
// # Concurrency
//
// An index has at most one writer at a time. Readers are thread-safe and
// may be opened only when no writer holds the index.
package storage
