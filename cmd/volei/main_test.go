package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gopkg.in/yaml.v3"
)

const goodDocument = `{
  "times": [
    {"time": "A", "grupo": "1", "naipe": "M"},
    {"time": "B", "grupo": "1", "naipe": "M"},
    {"time": "Leoas", "grupo": "A", "naipe": "F"}
  ],
  "jogos": [
    {"id": "m1", "timeA": "A", "timeB": "B", "sets": [3, 1],
     "parciais": [[25, 20], [25, 18], [20, 25], [25, 22]],
     "data": "2025-10-12", "hora": "19:00", "local": "Ginásio Central", "fase": "Grupos"},
    {"id": "m2", "timeA": "1º Grupo A", "timeB": "Vencedor Jogo 3", "sets": [0, 0],
     "data": "2025-10-14", "local": "Arena Norte", "fase": "Final", "naipe": "F"}
  ]
}`

const brokenDocument = `{
  "times": [{"time": "A", "grupo": "1", "naipe": "M"}],
  "jogos": [{"timeA": "A", "timeB": "Time Fantasma", "sets": [3, 0], "data": "2025-10-12", "local": "Quadra", "fase": "Grupos"}]
}`

func writeDocument(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestCommand(t *testing.T) (*cobra.Command, *bytes.Buffer) {
	t.Helper()
	logger = zap.NewNop()
	genderFlag, dateFlag, venueFlag, dataURL, outputFlag = "", "", "", "", "text"
	checkJobs = 2
	t.Cleanup(func() {
		genderFlag, dateFlag, venueFlag, dataFile = "", "", "", "dados.json"
	})

	var out bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&out)
	cmd.SetContext(context.Background())
	return cmd, &out
}

func TestStandingsCommand(t *testing.T) {
	cmd, out := newTestCommand(t)
	dataFile = writeDocument(t, "dados.json", goodDocument)

	require.NoError(t, runStandings(cmd, nil))
	text := out.String()
	assert.Contains(t, text, "MASCULINO - GRUPO 1")
	assert.Contains(t, text, "FEMININO - GRUPO A")

	assert.Equal(t, []string{"1", "A", "3", "1", "1", "0", "+2", "+10"}, tableRow(t, text, "A"))
	assert.Equal(t, []string{"2", "B", "0", "1", "0", "1", "-2", "-10"}, tableRow(t, text, "B"))
	assert.Equal(t, []string{"1", "Leoas", "0", "0", "0", "0", "0", "0"}, tableRow(t, text, "Leoas"))
	assert.NotContains(t, text, "+0")
}

func tableRow(t *testing.T, text, team string) []string {
	t.Helper()
	for _, line := range strings.Split(text, "\n") {
		fields := strings.Fields(strings.ReplaceAll(line, "|", " "))
		if len(fields) > 1 && fields[1] == team {
			return fields
		}
	}
	t.Fatalf("no row for team %q in:\n%s", team, text)
	return nil
}

func TestStandingsCommand_GenderFilter(t *testing.T) {
	cmd, out := newTestCommand(t)
	dataFile = writeDocument(t, "dados.json", goodDocument)
	genderFlag = "f"

	require.NoError(t, runStandings(cmd, nil))
	assert.NotContains(t, out.String(), "MASCULINO")
	assert.Contains(t, out.String(), "FEMININO")

	genderFlag = "X"
	assert.Error(t, runStandings(cmd, nil))
}

func TestStandingsCommand_StructuredOutput(t *testing.T) {
	cmd, out := newTestCommand(t)
	dataFile = writeDocument(t, "dados.json", goodDocument)
	genderFlag = "M"

	outputFlag = "json"
	require.NoError(t, runStandings(cmd, nil))
	var fromJSON []tableOutput
	require.NoError(t, json.Unmarshal(out.Bytes(), &fromJSON))

	out.Reset()
	outputFlag = "yaml"
	require.NoError(t, runStandings(cmd, nil))
	var fromYAML []tableOutput
	require.NoError(t, yaml.Unmarshal(out.Bytes(), &fromYAML))

	assert.Equal(t, fromJSON, fromYAML)
	require.Len(t, fromJSON, 1)
	assert.Equal(t, "1", fromJSON[0].Group)
	assert.Equal(t, standingOutput{Team: "A", P: 3, J: 1, V: 1, SS: 2, SP: 10}, fromJSON[0].Standings[0])

	outputFlag = "xml"
	assert.Error(t, runStandings(cmd, nil))
}

func TestDatesCommand(t *testing.T) {
	cmd, out := newTestCommand(t)
	dataFile = writeDocument(t, "dados.json", goodDocument)

	require.NoError(t, runDates(cmd, nil))
	assert.Equal(t, "2025-10-12  12/10\n2025-10-14  14/10\n", out.String())
}

func TestScheduleCommand(t *testing.T) {
	cmd, out := newTestCommand(t)
	dataFile = writeDocument(t, "dados.json", goodDocument)

	require.NoError(t, runSchedule(cmd, nil))
	text := out.String()
	assert.Contains(t, text, "Ginásio Central")
	assert.Contains(t, text, "3 x 1")
	assert.Contains(t, text, "25-20, 25-18, 20-25, 25-22")
	assert.NotContains(t, text, "Arena Norte")

	out.Reset()
	dateFlag = "2025-10-14"
	require.NoError(t, runSchedule(cmd, nil))
	assert.Contains(t, out.String(), "Aguardando Resultados")

	dateFlag = "14/10"
	assert.Error(t, runSchedule(cmd, nil))
}

func TestCommands_MissingFile(t *testing.T) {
	cmd, _ := newTestCommand(t)
	dataFile = filepath.Join(t.TempDir(), "missing.json")
	assert.Error(t, runStandings(cmd, nil))
}

func TestCheckCommand(t *testing.T) {
	cmd, out := newTestCommand(t)
	good := writeDocument(t, "good.json", goodDocument)
	broken := writeDocument(t, "broken.json", brokenDocument)
	missing := filepath.Join(t.TempDir(), "missing.json")

	err := runCheck(cmd, []string{good, broken, missing})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "2 of 3")

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ok"), lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "WARN"), lines[1])
	assert.Contains(t, lines[2], "unknown_team")
	assert.True(t, strings.HasPrefix(lines[3], "FAIL"), lines[3])

	out.Reset()
	require.NoError(t, runCheck(cmd, []string{good}))
}

func TestCheckFiles_KeepsArgumentOrder(t *testing.T) {
	paths := make([]string, 0, 6)
	for i := 0; i < 6; i++ {
		content := goodDocument
		if i%2 == 1 {
			content = brokenDocument
		}
		paths = append(paths, writeDocument(t, "doc.json", content))
	}
	reports := checkFiles(paths, 3)
	require.Len(t, reports, len(paths))
	for i, report := range reports {
		assert.Equal(t, paths[i], report.Path)
		assert.Equal(t, i%2 == 0, report.ok(), report.Path)
	}
}

func TestHashPasswordCommand(t *testing.T) {
	cmd, out := newTestCommand(t)
	require.NoError(t, runHashPassword(cmd, []string{"segredo"}))
	hash := strings.TrimSpace(out.String())
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(hash), []byte("segredo")))

	assert.Error(t, runHashPassword(cmd, []string{""}))
}
