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


// Package graph holds the directed concept graph and its traversal,
// composition and text rendering operations.
//
// A Builder accumulates concepts and relationships during ingestion and is
// sealed into an immutable Snapshot: node attributes, including semantic-type
// tags, are fixed at construction time and never mutated while serving.
// Snapshots are shared read-only across concurrent requests without locking.
//
// Neighborhood expansion produces per-seed Subgraphs: induced subgraphs over
// the nodes reachable within a hop bound, traversed in the snapshot's native
// adjacency order so results are reproducible across runs. Subgraphs are
// per-request values with no cross-request sharing.
package graph
