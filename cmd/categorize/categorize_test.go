package categorize_test

import (
	"bytes"
	"testing"

	"fjacquet/cycle-spend/cmd/categorize"
	"fjacquet/cycle-spend/internal/categorizer"
	"fjacquet/cycle-spend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategorizeCommand_Metadata(t *testing.T) {
	assert.Equal(t, "categorize [description...]", categorize.Cmd.Use)
	assert.Contains(t, categorize.Cmd.Short, "Categorize transaction")
	assert.Contains(t, categorize.Cmd.Long, "case-insensitively")
	assert.NotNil(t, categorize.Cmd.RunE)
	assert.Error(t, categorize.Cmd.Args(categorize.Cmd, []string{}))
	assert.NoError(t, categorize.Cmd.Args(categorize.Cmd, []string{"UBER"}))
}

func TestDescribe(t *testing.T) {
	strategy := categorizer.NewKeywordStrategy(models.CategoryRules{
		{Name: "Travel", Keywords: []string{"uber"}},
		{Name: "Food", Keywords: []string{"SWIGGY"}},
	}, nil)

	var buf bytes.Buffer
	require.NoError(t, categorize.Describe(&buf, strategy, []string{"UBER TRIP", " swiggy ", "Bookshop"}))

	assert.Equal(t,
		"UBER TRIP\tTravel\t(matched \"uber\")\n"+
			"swiggy\tFood\t(matched \"SWIGGY\")\n"+
			"Bookshop\tUncategorized\n",
		buf.String())
}
