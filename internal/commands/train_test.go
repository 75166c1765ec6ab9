package commands_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrain_WritesArtifacts(t *testing.T) {
	dir := initProject(t)
	writeStatement(t, dir, "statement.csv", 40)
	out, stderr, err := runBudgetwise(t, "import", "--dir", dir)
	require.NoError(t, err, out+stderr)

	out, stderr, err = runBudgetwise(t, "train", "--dir", dir, "--epochs", "50")
	require.NoError(t, err, out+stderr)
	assert.Contains(t, out, "Trained on 40 days")

	_, err = os.Stat(filepath.Join(dir, "models", "seq_model.gob"))
	require.NoError(t, err, "model artifact should exist")
	_, err = os.Stat(filepath.Join(dir, "models", "seq_model_scaler.gob"))
	require.NoError(t, err, "scaler artifact should exist")
}

func TestTrain_ThenForecastUsesModel(t *testing.T) {
	dir := initProject(t)
	writeStatement(t, dir, "statement.csv", 40)
	out, stderr, err := runBudgetwise(t, "import", "--dir", dir)
	require.NoError(t, err, out+stderr)

	out, stderr, err = runBudgetwise(t, "train", "--dir", dir, "--epochs", "50")
	require.NoError(t, err, out+stderr)

	out, _, err = runBudgetwise(t, "forecast", "--dir", dir, "--days", "7", "--json")
	require.NoError(t, err, out)

	var got forecastPayload
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "sequence-model", got.Method)
	assert.InDelta(t, 85, got.Confidence, 0.001)
}

func TestTrain_InsufficientHistory(t *testing.T) {
	dir := initProject(t)
	writeStatement(t, dir, "statement.csv", 10)
	out, stderr, err := runBudgetwise(t, "import", "--dir", dir)
	require.NoError(t, err, out+stderr)

	_, stderr, err = runBudgetwise(t, "train", "--dir", dir)
	require.Error(t, err)
	assert.Contains(t, stderr, "need at least 30 days")
}

func TestTrain_EmptyLedger(t *testing.T) {
	dir := initProject(t)

	_, _, err := runBudgetwise(t, "train", "--dir", dir)
	require.Error(t, err)
}
