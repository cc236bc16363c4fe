package services

import (
	"context"
	"fmt"

	recaptcha "cloud.google.com/go/recaptchaenterprise/v2/apiv1"
	"cloud.google.com/go/recaptchaenterprise/v2/apiv1/recaptchaenterprisepb"
	"google.golang.org/api/option"

	"dolanlur/config"
)

// Captcha scores reCAPTCHA Enterprise tokens presented on the public
// auth routes.
type Captcha struct {
	client   *recaptcha.Client
	parent   string
	siteKey  string
	minScore float32
}

func NewCaptcha(ctx context.Context, cfg config.Captcha) (*Captcha, error) {
	if cfg.ProjectID == "" || cfg.SiteKey == "" {
		return nil, fmt.Errorf("captcha project id and site key are required")
	}

	var opts []option.ClientOption
	if cfg.CredentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(cfg.CredentialsFile))
	}
	client, err := recaptcha.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create recaptcha client: %w", err)
	}

	return &Captcha{
		client:   client,
		parent:   fmt.Sprintf("projects/%s", cfg.ProjectID),
		siteKey:  cfg.SiteKey,
		minScore: float32(cfg.MinScore),
	}, nil
}

func (v *Captcha) Close() error {
	return v.client.Close()
}

// Verify returns false when the token is invalid, was minted for a
// different action, or scored below the configured threshold.
func (v *Captcha) Verify(ctx context.Context, token, action, ip, userAgent string) (bool, error) {
	response, err := v.client.CreateAssessment(ctx, &recaptchaenterprisepb.CreateAssessmentRequest{
		Parent: v.parent,
		Assessment: &recaptchaenterprisepb.Assessment{
			Event: &recaptchaenterprisepb.Event{
				Token:         token,
				SiteKey:       v.siteKey,
				UserIpAddress: ip,
				UserAgent:     userAgent,
			},
		},
	})
	if err != nil {
		return false, fmt.Errorf("create assessment: %w", err)
	}

	props := response.GetTokenProperties()
	if props == nil || !props.GetValid() {
		return false, nil
	}
	if action != "" && props.GetAction() != action {
		return false, nil
	}
	if risk := response.GetRiskAnalysis(); risk != nil && risk.GetScore() < v.minScore {
		return false, nil
	}
	return true, nil
}
