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

// Package ingestion loads vocabulary release files into storage. Concept,
// relationship and semantic-type files are tab-separated; semantic-type tags
// are attached to concepts before they are stored, so loaded snapshots never
// need post-construction tagging. Concept name embeddings are computed in
// batches on a worker pool, with a content-hash cache to skip names already
// embedded by a previous run with the same model.
package ingestion
