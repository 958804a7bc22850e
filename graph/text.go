package graph

import (
	"fmt"
	"strings"

	"github.com/poiesic/clingraph/core"
)

// Text renders the subgraph's edges as one line per relationship, preceded
// by a "Graph:" header. Identifiers without a lexicon entry render as their
// raw decimal form. Edge order follows the subgraph's insertion order.
func (g *Subgraph) Text(lexicon *core.Lexicon) string {
	var sb strings.Builder
	sb.WriteString("Graph:\n")
	if g == nil {
		return sb.String()
	}
	for _, rel := range g.edges {
		fmt.Fprintf(&sb, "%s --[%s]--> %s\n",
			lexicon.DisplayName(rel.From),
			lexicon.DisplayName(rel.Type),
			lexicon.DisplayName(rel.To))
	}
	return sb.String()
}
