package main

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-scorer/internal/lexicon"
	"github.com/jonathan/resume-scorer/internal/types"
)

func TestLexiconCommand_Single(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "lexicon", "soft")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(stdout), "\n")
	assert.Equal(t, lexicon.SoftSkills.Terms(), lines)
}

func TestLexiconCommand_All(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "lexicon")
	require.NoError(t, err)

	assert.Contains(t, stdout, "# keywords (15)")
	assert.Contains(t, stdout, "# technical (29)")
	assert.Contains(t, stdout, "# soft (14)")
}

func TestLexiconCommand_JSON(t *testing.T) {
	stdout, _, err := executeCommand(t, "", "lexicon", "--json")
	require.NoError(t, err)

	var resp types.LexiconResponse
	require.NoError(t, json.Unmarshal([]byte(stdout), &resp))
	assert.Equal(t, lexicon.CommonKeywords.Terms(), resp.Keywords)
	assert.Equal(t, lexicon.TechnicalSkills.Terms(), resp.Technical)
	assert.Equal(t, lexicon.SoftSkills.Terms(), resp.Soft)

	stdout, _, err = executeCommand(t, "", "lexicon", "technical", "--json")
	require.NoError(t, err)
	var terms []string
	require.NoError(t, json.Unmarshal([]byte(stdout), &terms))
	assert.Equal(t, lexicon.TechnicalSkills.Terms(), terms)
}

func TestLexiconCommand_Unknown(t *testing.T) {
	_, _, err := executeCommand(t, "", "lexicon", "hobbies")
	assert.Error(t, err)
}

func TestLexiconCommand_TooManyArgs(t *testing.T) {
	_, _, err := executeCommand(t, "", "lexicon", "soft", "technical")
	assert.Error(t, err)
}
