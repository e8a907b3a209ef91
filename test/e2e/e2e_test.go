// test/e2e/e2e_test.go
package e2e

import (
	"context"
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"personality-workers/internal/app"
	"personality-workers/internal/common/cache"
	"personality-workers/internal/common/camunda"
	"personality-workers/internal/common/config"
	"personality-workers/internal/common/database"
	"personality-workers/internal/common/logger"
	"personality-workers/internal/common/validation"
	"personality-workers/internal/personality/analyzer"

	apt "personality-workers/internal/workers/personality/analyze-personality-text"
	aqr "personality-workers/internal/workers/personality/analyze-quest-responses"
	ga "personality-workers/internal/workers/personality/generate-avatar"
	mut "personality-workers/internal/workers/personality/map-ui-traits"
	mc "personality-workers/internal/workers/personality/match-character"
)

const sampleText = "I love exploring new ideas with friends! We plan every trip carefully, and I always help others when they need it."

func newAnalyzer(t *testing.T) *analyzer.Analyzer {
	t.Helper()
	a, err := app.NewAnalyzer(config.AnalyzerConfig{Scorer: "heuristic"}, logger.NewTestLogger(t))
	require.NoError(t, err)
	return a
}

// ==========================
// In-process pipeline
// ==========================

func TestPersonalityPipeline(t *testing.T) {
	ctx := context.Background()
	log := logger.NewTestLogger(t)
	a := newAnalyzer(t)
	v := validation.MustNew()
	noCache := cache.New(nil, time.Hour, log)

	textOut, err := apt.NewHandler(apt.LoadConfig(config.WorkerConfig{}), a, noCache, v, nil, log).
		Execute(ctx, &apt.Input{Text: sampleText})
	require.NoError(t, err)
	require.False(t, textOut.Degraded)
	scores := textOut.Vector.ToMap()

	avatarOut, err := ga.NewHandler(ga.LoadConfig(config.WorkerConfig{}), a, v, nil, log).
		Execute(ctx, &ga.Input{PersonalityScores: scores, UserContext: analyzer.UserContext{UserName: "Sam"}})
	require.NoError(t, err)
	assert.Equal(t, textOut.AvatarData.Archetype, avatarOut.Avatar.Archetype)

	matchOut, err := mc.NewHandler(mc.LoadConfig(config.WorkerConfig{}), a, v, nil, log).
		Execute(ctx, &mc.Input{PersonalityScores: scores})
	require.NoError(t, err)
	assert.Equal(t, mc.SourceScores, matchOut.Source)
	assert.Equal(t, a.MatchCharacter(textOut.Vector).CharacterName, matchOut.Match.CharacterName)

	traitsOut, err := mut.NewHandler(mut.LoadConfig(config.WorkerConfig{}), a, v, nil, log).
		Execute(ctx, &mut.Input{SelectedTraits: map[string]bool{"creative": true, "organized": true}})
	require.NoError(t, err)

	fromTraits, err := mc.NewHandler(mc.LoadConfig(config.WorkerConfig{}), a, v, nil, log).
		Execute(ctx, &mc.Input{SelectedTraits: map[string]bool{"creative": true, "organized": true}})
	require.NoError(t, err)
	assert.Equal(t, traitsOut.PersonalityScores, fromTraits.Vector)

	questOut, err := aqr.NewHandler(aqr.LoadConfig(config.WorkerConfig{}), a, v, nil, log).
		Execute(ctx, &aqr.Input{Responses: []string{
			"I would build a cabin near the river.",
			"I ask the group what they think first.",
			"I make a list and stick to it.",
			"Honestly I worry a bit, but I try new things anyway.",
		}, UserName: "Sam"})
	require.NoError(t, err)
	assert.Equal(t, 4, questOut.ResponseCount)
	assert.Equal(t, analyzer.StatusComplete, questOut.Analysis.CompletionStatus)
}

// ==========================
// Real services (opt-in)
// ==========================

func TestRedisCache(t *testing.T) {
	addr := os.Getenv("E2E_REDIS_ADDRESS")
	if addr == "" {
		t.Skip("E2E_REDIS_ADDRESS not set")
	}
	ctx := context.Background()
	log := logger.NewTestLogger(t)

	rc, err := database.ConnectRedis(ctx, config.RedisConfig{Address: addr}, 3, log)
	require.NoError(t, err)
	defer rc.Close()
	rdb := rc.GetClient()

	input := &apt.Input{Text: sampleText + " " + time.Now().Format(time.RFC3339Nano)}
	h := apt.NewHandler(apt.LoadConfig(config.WorkerConfig{}), newAnalyzer(t), cache.New(rdb, time.Minute, log), validation.MustNew(), nil, log)

	first, err := h.Execute(ctx, input)
	require.NoError(t, err)
	assert.False(t, first.Cached)

	second, err := h.Execute(ctx, input)
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.AnalysisID, second.AnalysisID)
}

const mapTraitsProcess = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL"
  xmlns:zeebe="http://camunda.org/schema/zeebe/1.0"
  id="Definitions_e2e" targetNamespace="http://bpmn.io/schema/bpmn">
  <bpmn:process id="e2e-map-ui-traits" isExecutable="true">
    <bpmn:startEvent id="start" />
    <bpmn:sequenceFlow id="f1" sourceRef="start" targetRef="map" />
    <bpmn:serviceTask id="map" name="Map UI Traits">
      <bpmn:extensionElements>
        <zeebe:taskDefinition type="map-ui-traits" />
      </bpmn:extensionElements>
    </bpmn:serviceTask>
    <bpmn:sequenceFlow id="f2" sourceRef="map" targetRef="end" />
    <bpmn:endEvent id="end" />
  </bpmn:process>
</bpmn:definitions>`

func TestZeebeMapUITraits(t *testing.T) {
	addr := os.Getenv("E2E_ZEEBE_ADDRESS")
	if addr == "" {
		t.Skip("E2E_ZEEBE_ADDRESS not set")
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()
	log := logger.NewTestLogger(t)

	client, err := camunda.NewClientWithConfig(ctx, camunda.ConfigFrom(config.CamundaConfig{BrokerAddress: addr, RequestTimeout: 10000}))
	require.NoError(t, err)
	defer client.Close()
	zc := client.GetClient()

	_, err = zc.NewDeployResourceCommand().AddResource([]byte(mapTraitsProcess), "e2e-map-ui-traits.bpmn").Send(ctx)
	require.NoError(t, err)

	pool := camunda.NewPool(zc, log)
	defer pool.Close()
	wc := config.WorkerConfig{Enabled: true, MaxJobsActive: 1, Timeout: 10000}
	pool.Start(mut.TaskType, wc, mut.NewHandler(mut.LoadConfig(wc), newAnalyzer(t), validation.MustNew(), nil, log))

	result := createWithResult(ctx, t, zc, map[string]interface{}{
		"selected_traits": map[string]bool{"energy": true, "calm": true},
	})

	var out mut.Output
	require.NoError(t, json.Unmarshal([]byte(result), &out))
	assert.Greater(t, out.PersonalityScores.Extraversion, 0.5)
}

func createWithResult(ctx context.Context, t *testing.T, zc zbc.Client, vars map[string]interface{}) string {
	t.Helper()
	cmd, err := zc.NewCreateInstanceCommand().
		BPMNProcessId("e2e-map-ui-traits").
		LatestVersion().
		VariablesFromMap(vars)
	require.NoError(t, err)

	resp, err := cmd.WithResult().Send(ctx)
	require.NoError(t, err)
	return resp.GetVariables()
}
