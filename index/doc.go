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


// Package index provides an immutable in-memory nearest-neighbor index over
// concept reference embeddings.
//
// Reference vectors are L2-normalized when added, so similarity is computed
// as the dot product, i.e. the cosine of the angle between query and
// reference. The score lies in [-1, 1] and decreases monotonically with
// angular distance; cutoff thresholds are compared against it directly.
//
// The index is built once at startup and shared read-only across concurrent
// requests; Search never mutates index state.
package index
