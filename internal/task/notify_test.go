package task

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tripwind/tripwind/internal/domain/entity"
	"github.com/tripwind/tripwind/internal/generation"
	"github.com/tripwind/tripwind/internal/notify"
	"github.com/tripwind/tripwind/internal/policy"
	"github.com/tripwind/tripwind/internal/store/memstore"
	"github.com/tripwind/tripwind/pkg/pipeline/core/model"
)

func fp(v float64) *float64 { return &v }
func ip(v int64) *int64     { return &v }

func qualifyingSpot(city, airport string) entity.VacationSpot {
	return entity.VacationSpot{
		City:                city,
		Airport:             airport,
		PunctualPct:         fp(80),
		AvgTemperatureAirF:  fp(75),
		KoreanRestaurantCnt: ip(2),
		ZooCnt:              ip(1),
	}
}

func failingSpot(city, airport string) entity.VacationSpot {
	s := qualifyingSpot(city, airport)
	s.AvgTemperatureAirF = fp(40)
	return s
}

// recordingGenerator returns a fixed outcome and remembers its prompts.
type recordingGenerator struct {
	outcome generation.Outcome
	prompts []string
}

func (g *recordingGenerator) GenerateReport(_ context.Context, prompt string) generation.Outcome {
	g.prompts = append(g.prompts, prompt)
	return g.outcome
}

// recordingChannel remembers sent messages.
type recordingChannel struct {
	sent    []notify.Message
	sendErr error
}

func (c *recordingChannel) Name() string { return "recording" }

func (c *recordingChannel) Send(_ context.Context, _ string, msg notify.Message) error {
	if c.sendErr != nil {
		return c.sendErr
	}
	c.sent = append(c.sent, msg)
	return nil
}

func seedStore(t *testing.T, spots ...entity.VacationSpot) *memstore.MemoryTargetStore {
	t.Helper()
	s := memstore.NewMemoryTargetStore()
	_, err := s.Merge(context.Background(), spots)
	require.NoError(t, err)
	return s
}

func newNotifyTasklet(s *memstore.MemoryTargetStore, g generation.Client, c notify.Channel) *NotificationTasklet {
	return NewNotificationTasklet(s, policy.DefaultThresholds(), g, c, NotifyConfig{Recipient: "traveler@example.com"})
}

func TestNotificationTasklet_DeliversGeneratedReport(t *testing.T) {
	gen := &recordingGenerator{outcome: generation.Generated("Go to Seattle.")}
	channel := &recordingChannel{}
	tasklet := newNotifyTasklet(seedStore(t, qualifyingSpot("Seattle", "SEA")), gen, channel)
	execution := model.NewTaskExecution(NotificationTaskName, model.TriggerUpstream)

	exit, err := tasklet.Execute(context.Background(), execution)

	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exit)
	require.Len(t, channel.sent, 1, "exactly one message per run")
	assert.Equal(t, "Go to Seattle.", channel.sent[0].Body)
	assert.Equal(t, int64(1), execution.Counters["matches"])
	assert.Equal(t, int64(1), execution.Counters["reports_generated"])
	assert.Equal(t, int64(1), execution.Counters["notifications_sent"])
	require.Len(t, gen.prompts, 1)
	assert.Contains(t, gen.prompts[0], `"city": "Seattle"`)
}

func TestNotificationTasklet_NoMatchSkipsGeneration(t *testing.T) {
	gen := &recordingGenerator{outcome: generation.Generated("never used")}
	channel := &recordingChannel{}
	tasklet := newNotifyTasklet(seedStore(t, failingSpot("Fargo", "FAR")), gen, channel)
	execution := model.NewTaskExecution(NotificationTaskName, model.TriggerUpstream)

	exit, err := tasklet.Execute(context.Background(), execution)

	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusNoOp, exit)
	assert.Empty(t, gen.prompts, "no generation call on the no-match path")
	require.Len(t, channel.sent, 1)
	assert.Contains(t, channel.sent[0].Body, "No suitable vacation spots")
	assert.Zero(t, execution.Counters["matches"])
}

func TestNotificationTasklet_GenerationUnavailable(t *testing.T) {
	gen := &recordingGenerator{outcome: generation.Unavailable("no API key configured")}
	channel := &recordingChannel{}
	tasklet := newNotifyTasklet(seedStore(t, qualifyingSpot("Seattle", "SEA")), gen, channel)
	execution := model.NewTaskExecution(NotificationTaskName, model.TriggerUpstream)

	exit, err := tasklet.Execute(context.Background(), execution)

	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exit)
	require.Len(t, channel.sent, 1)
	assert.Contains(t, channel.sent[0].Body, "inaccessible in this deployment")
	assert.NotContains(t, channel.sent[0].Body, "Go to")
	assert.Equal(t, int64(1), execution.Counters["generation_failures"])
}

func TestNotificationTasklet_GenerationFailure(t *testing.T) {
	gen := &recordingGenerator{outcome: generation.Failed("upstream timeout")}
	channel := &recordingChannel{}
	tasklet := newNotifyTasklet(seedStore(t, qualifyingSpot("Seattle", "SEA")), gen, channel)
	execution := model.NewTaskExecution(NotificationTaskName, model.TriggerUpstream)

	exit, err := tasklet.Execute(context.Background(), execution)

	require.NoError(t, err)
	assert.Equal(t, model.ExitStatusCompleted, exit)
	require.Len(t, channel.sent, 1)
	assert.Contains(t, channel.sent[0].Body, "failed on this attempt")
	assert.NotContains(t, channel.sent[0].Body, "inaccessible in this deployment")
	assert.Equal(t, int64(1), execution.Counters["generation_failures"])
}

func TestNotificationTasklet_MatchLimit(t *testing.T) {
	spots := make([]entity.VacationSpot, 0, 15)
	for n := 0; n < 15; n++ {
		spots = append(spots, qualifyingSpot(fmt.Sprintf("City %02d", n), fmt.Sprintf("A%02d", n)))
	}
	gen := &recordingGenerator{outcome: generation.Generated("report")}
	channel := &recordingChannel{}
	tasklet := newNotifyTasklet(seedStore(t, spots...), gen, channel)
	execution := model.NewTaskExecution(NotificationTaskName, model.TriggerUpstream)

	_, err := tasklet.Execute(context.Background(), execution)

	require.NoError(t, err)
	assert.Equal(t, int64(10), execution.Counters["matches"])
}

func TestNotificationTasklet_ChannelFailurePropagates(t *testing.T) {
	gen := &recordingGenerator{outcome: generation.Generated("report")}
	channel := &recordingChannel{sendErr: errors.New("smtp down")}
	tasklet := newNotifyTasklet(seedStore(t, qualifyingSpot("Seattle", "SEA")), gen, channel)
	execution := model.NewTaskExecution(NotificationTaskName, model.TriggerUpstream)

	exit, err := tasklet.Execute(context.Background(), execution)

	require.Error(t, err)
	assert.Equal(t, model.ExitStatusFailed, exit)
	assert.Zero(t, execution.Counters["notifications_sent"])
}
