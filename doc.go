// Copyright [2019] LinkedIn Corp. Licensed under the Apache License, Version
// 2.0 (the "License"); you may not use this file except in compliance with the
// License.  You may obtain a copy of the License at
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.

// Package avsc parses Avro schemas into a graph of type nodes and drives the
// Avro binary encoding from them.
//
// A schema document (already unmarshaled from JSON into the usual
// string/float64/bool/nil/[]interface{}/map[string]interface{} shape) is
// turned into a TypeNode with Parse. The resulting node can validate native
// Go values, read and write them against the Avro binary encoding through a
// Tap, and produce structurally valid random samples.
//
// The Avro object container file format, RPC protocol files, the JSON
// (textual) Avro encoding, and schema resolution between a reader and a
// writer schema are not part of this package.
package avsc
