// internal/retrieval/builder.go
package retrieval

import (
	"fmt"
	"strings"

	"github.com/avolkova/reviewbrain/internal/models"
)

// statementHead embeds the query text server-side and projects the
// derived label columns. The two leading placeholders always bind the
// query text (embedding step) and the result cap (TOP clause), in that
// order; optional clause parameters follow in appendix order.
const statementHead = `DECLARE @query_vector VECTOR(1536);
EXEC dbo.create_embeddings @model = N'%s', @text = ?, @vector = @query_vector OUTPUT;
SELECT TOP (?)
    r.Score,
    r.Summary,
    r.Text,
    VECTOR_DISTANCE('cosine', @query_vector, r.Embedding) AS distance,
    CASE WHEN LEN(r.Text) > 100 THEN 'Detailed Review' ELSE 'Short Review' END AS review_length,
    CASE WHEN r.Score >= 4 THEN 'High Score' WHEN r.Score >= 2 THEN 'Medium Score' ELSE 'Low Score' END AS score_category
FROM dbo.Reviews r
WHERE 1=1`

const statementOrder = `
ORDER BY distance ASC, r.Score DESC, review_length DESC`

// Builder assembles the hybrid keyword + vector-distance search
// statement. It never executes anything; output is the statement text
// and the bound parameters in placeholder order.
type Builder struct {
	head string
}

// NewBuilder creates a builder for the given embedding model identifier.
// The identifier is trusted configuration and is inlined into the fixed
// statement head so the first bound parameter stays the query text.
func NewBuilder(embeddingModel string) *Builder {
	return &Builder{head: fmt.Sprintf(statementHead, embeddingModel)}
}

// Build renders the statement for a filter. Optional clauses are
// appended in fixed order (anonymous exclusion, minimum score, minimum
// text length, keyword) so parameter positions always line up with
// placeholder positions.
func (b *Builder) Build(filter models.SearchFilter) (string, []interface{}) {
	var sb strings.Builder
	sb.WriteString(b.head)

	params := []interface{}{filter.Query, filter.MaxResults}

	if filter.ExcludeAnonymous {
		sb.WriteString("\n  AND r.UserId NOT LIKE '%anonymous%'")
	}
	if filter.MinScore > 0 {
		sb.WriteString("\n  AND r.Score >= ?")
		params = append(params, filter.MinScore)
	}
	if filter.MinTextLength > 0 {
		sb.WriteString("\n  AND LEN(r.Text) >= ?")
		params = append(params, filter.MinTextLength)
	}
	if filter.Keyword != "" {
		sb.WriteString("\n  AND r.Text LIKE ?")
		params = append(params, "%"+filter.Keyword+"%")
	}

	sb.WriteString(statementOrder)

	return sb.String(), params
}
