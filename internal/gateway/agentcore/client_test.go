package agentcore

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInvoker struct {
	body  string
	err   error
	input *bedrockagentcore.InvokeAgentRuntimeInput
	// set when the call observed a deadline
	deadline bool
}

func (f *fakeInvoker) InvokeAgentRuntime(ctx context.Context, in *bedrockagentcore.InvokeAgentRuntimeInput, _ ...func(*bedrockagentcore.Options)) (*bedrockagentcore.InvokeAgentRuntimeOutput, error) {
	f.input = in
	_, f.deadline = ctx.Deadline()
	if f.err != nil {
		return nil, f.err
	}
	return &bedrockagentcore.InvokeAgentRuntimeOutput{
		Response: io.NopCloser(strings.NewReader(f.body)),
	}, nil
}

func newTestClient(inv Invoker) *Client {
	return NewClient(inv, Config{
		JDRuntimeARN:     "arn:aws:bedrock-agentcore:us-east-1:123:runtime/jd",
		ResumeRuntimeARN: "arn:aws:bedrock-agentcore:us-east-1:123:runtime/resume",
		Timeout:          time.Second,
	}, zap.NewNop())
}

func TestAnalyzeJob(t *testing.T) {
	inv := &fakeInvoker{body: `{
		"skills": {"categories": [{"name": "Backend", "skills": [{"skill": "Go", "required": true}]}]},
		"education_desired_experience": {"degree": "BSc"},
		"responsibilities": [{"text": "Build services", "source_section": "Duties"}]
	}`}
	c := newTestClient(inv)

	out, err := c.AnalyzeJob(context.Background(), "job-1")
	require.NoError(t, err)

	require.NotNil(t, out.Skills)
	assert.Equal(t, "Go", out.Skills.Categories[0].Skills[0].Skill)
	assert.JSONEq(t, `{"degree":"BSc"}`, string(out.EducationDesiredExperience))
	assert.Equal(t, "Duties", out.Responsibilities[0].SourceSection)

	assert.Equal(t, "arn:aws:bedrock-agentcore:us-east-1:123:runtime/jd", aws.ToString(inv.input.AgentRuntimeArn))
	assert.Equal(t, "DEFAULT", aws.ToString(inv.input.Qualifier))
	assert.GreaterOrEqual(t, len(aws.ToString(inv.input.RuntimeSessionId)), 33)
	assert.True(t, inv.deadline)

	var payload map[string]string
	require.NoError(t, json.Unmarshal(inv.input.Payload, &payload))
	assert.Equal(t, map[string]string{"jd_id": "job-1"}, payload)
}

func TestEvaluateResume(t *testing.T) {
	inv := &fakeInvoker{body: `{"resume_summary": {"headline": "Go dev"}, "sparse_resume": true, "status": "completed"}`}
	c := newTestClient(inv)

	out, err := c.EvaluateResume(context.Background(), "cand-1", "job-1")
	require.NoError(t, err)
	assert.Equal(t, "completed", out.Status)
	assert.JSONEq(t, `true`, string(out.SparseResume))

	var payload map[string]string
	require.NoError(t, json.Unmarshal(inv.input.Payload, &payload))
	assert.Equal(t, "cand-1", payload["id"])
	assert.Equal(t, "job-1", payload["job_id"])
}

func TestInvoke_EmptyBody(t *testing.T) {
	c := newTestClient(&fakeInvoker{body: ""})

	out, err := c.AnalyzeJob(context.Background(), "job-1")
	require.NoError(t, err)
	assert.Nil(t, out.Skills)
	assert.Nil(t, out.Responsibilities)
}

func TestInvoke_Failures(t *testing.T) {
	t.Run("runtime error", func(t *testing.T) {
		boom := errors.New("throttled")
		c := newTestClient(&fakeInvoker{err: boom})
		_, err := c.EvaluateResume(context.Background(), "cand-1", "job-1")
		assert.ErrorIs(t, err, boom)
	})

	t.Run("malformed body", func(t *testing.T) {
		c := newTestClient(&fakeInvoker{body: "not json"})
		_, err := c.AnalyzeJob(context.Background(), "job-1")
		assert.Error(t, err)
	})

	t.Run("missing arn", func(t *testing.T) {
		inv := &fakeInvoker{}
		c := NewClient(inv, Config{}, zap.NewNop())
		_, err := c.AnalyzeJob(context.Background(), "job-1")
		assert.ErrorIs(t, err, ErrRuntimeNotConfigured)
		assert.Nil(t, inv.input)
	})
}
