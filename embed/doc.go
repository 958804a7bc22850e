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


// Package embed generates permutation embeddings for candidate phrases.
//
// Vocabulary entries often list a phrase's words in a canonical order the
// caller cannot know ("pain chest" vs "chest pain"), so the Generator embeds
// not just the phrase as given but reorderings of its tokens. Short phrases
// are permuted exhaustively; longer ones are capped at a configurable
// permutation count to avoid factorial blow-up. Each result records how many
// tokens it covers so downstream ranking can prefer more specific matches.
package embed
