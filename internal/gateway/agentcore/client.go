package agentcore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"talent-workflow-api/internal/domain"
	"talent-workflow-api/pkg/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/bedrockagentcore"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrRuntimeNotConfigured is returned when the runtime ARN for a call is empty.
var ErrRuntimeNotConfigured = errors.New("agent runtime ARN not configured")

// Invoker is the subset of the AgentCore client this package needs.
type Invoker interface {
	InvokeAgentRuntime(ctx context.Context, params *bedrockagentcore.InvokeAgentRuntimeInput, optFns ...func(*bedrockagentcore.Options)) (*bedrockagentcore.InvokeAgentRuntimeOutput, error)
}

type Config struct {
	Region           string
	AccessKeyID      string
	SecretAccessKey  string
	JDRuntimeARN     string
	ResumeRuntimeARN string
	Qualifier        string
	Timeout          time.Duration
}

// Client implements domain.AgentGateway on top of Bedrock AgentCore.
type Client struct {
	invoker Invoker
	cfg     Config
	log     *zap.Logger
}

// NewAWSInvoker builds an AgentCore client. Static keys are used when both
// are set; otherwise the default AWS credential chain applies.
func NewAWSInvoker(ctx context.Context, cfg Config) (*bedrockagentcore.Client, error) {
	opts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretAccessKey != "" {
		opts = append(opts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}
	return bedrockagentcore.NewFromConfig(awsCfg), nil
}

func NewClient(invoker Invoker, cfg Config, log *zap.Logger) *Client {
	if cfg.Qualifier == "" {
		cfg.Qualifier = "DEFAULT"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &Client{invoker: invoker, cfg: cfg, log: log.Named("agentcore")}
}

func (c *Client) AnalyzeJob(ctx context.Context, jobID string) (*domain.JobAnalysis, error) {
	var out domain.JobAnalysis
	if err := c.invoke(ctx, c.cfg.JDRuntimeARN, map[string]string{"jd_id": jobID}, &out); err != nil {
		return nil, fmt.Errorf("analyze job %s: %w", jobID, err)
	}
	return &out, nil
}

func (c *Client) EvaluateResume(ctx context.Context, candidateID, jobID string) (*domain.ResumeEvaluation, error) {
	var out domain.ResumeEvaluation
	payload := map[string]string{"id": candidateID, "job_id": jobID}
	if err := c.invoke(ctx, c.cfg.ResumeRuntimeARN, payload, &out); err != nil {
		return nil, fmt.Errorf("evaluate candidate %s: %w", candidateID, err)
	}
	return &out, nil
}

// invoke sends payload to the runtime and decodes the response into out.
// An empty response body leaves out at its zero value.
func (c *Client) invoke(ctx context.Context, runtimeARN string, payload any, out any) error {
	if runtimeARN == "" {
		return ErrRuntimeNotConfigured
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	sessionID := uuid.NewString()
	start := time.Now()

	resp, err := c.invoker.InvokeAgentRuntime(ctx, &bedrockagentcore.InvokeAgentRuntimeInput{
		AgentRuntimeArn:  aws.String(runtimeARN),
		RuntimeSessionId: aws.String(sessionID),
		Qualifier:        aws.String(c.cfg.Qualifier),
		ContentType:      aws.String("application/json"),
		Accept:           aws.String("application/json"),
		Payload:          body,
	})
	if err != nil {
		c.log.Warn("agent runtime invocation failed",
			zap.String("session_id", sessionID),
			zap.Duration("elapsed", time.Since(start)),
			zap.Error(err),
		)
		return err
	}

	var raw []byte
	if resp.Response != nil {
		defer resp.Response.Close()
		raw, err = io.ReadAll(resp.Response)
		if err != nil {
			return fmt.Errorf("read agent response: %w", err)
		}
	}

	c.log.Debug("agent runtime responded",
		zap.String("session_id", sessionID),
		zap.Duration("elapsed", time.Since(start)),
		zap.Int("bytes", len(raw)),
	)

	if len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		c.log.Warn("agent runtime returned malformed body",
			zap.String("session_id", sessionID),
			zap.String("body", logger.Truncate(string(raw), 200)),
		)
		return fmt.Errorf("decode agent response: %w", err)
	}
	return nil
}
