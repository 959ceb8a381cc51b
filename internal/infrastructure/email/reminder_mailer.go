package email

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"go.uber.org/zap"

	"github.com/sanosuguru/go-event-scheduler/internal/config"
	"github.com/sanosuguru/go-event-scheduler/internal/pkg/logger"
	"github.com/sanosuguru/go-event-scheduler/internal/reminder"
)

// Sender は ses.Client のうちメール送信に使う部分
type Sender interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

// NewReminderNotifier は設定に応じたリマインダーメールの送信者を返す
// Provider が ses 以外なら何もしない送信者を返す
func NewReminderNotifier(cfg config.MailerConfig) reminder.Notifier {
	switch cfg.Provider {
	case "ses":
		awsCfg := aws.Config{
			Region: cfg.AWSRegion,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(cfg.AWSAccessKeyID, cfg.AWSSecretAccessKey, ""),
			),
		}
		return NewSESNotifier(ses.NewFromConfig(awsCfg), cfg.From, cfg.To)
	case "noop", "":
		return &NoopNotifier{}
	default:
		logger.Warn("未知のメールプロバイダーのため送信しません", zap.String("provider", cfg.Provider))
		return &NoopNotifier{}
	}
}

// SESNotifier は AWS SES でリマインダーメールを送る
type SESNotifier struct {
	sender Sender
	from   string
	to     []string
}

// NewSESNotifier は SESNotifier を作成する。to はカンマ区切りで複数指定できる
func NewSESNotifier(sender Sender, from, to string) *SESNotifier {
	var recipients []string
	for _, addr := range strings.Split(to, ",") {
		if a := strings.TrimSpace(addr); a != "" {
			recipients = append(recipients, a)
		}
	}
	return &SESNotifier{sender: sender, from: from, to: recipients}
}

func (n *SESNotifier) SendReminder(ctx context.Context, r reminder.Reminder) error {
	if len(n.to) == 0 {
		return fmt.Errorf("リマインダーメールの宛先が設定されていません")
	}

	subject, text := renderReminder(r)
	input := &ses.SendEmailInput{
		Source: aws.String(n.from),
		Destination: &types.Destination{
			ToAddresses: n.to,
		},
		Message: &types.Message{
			Subject: &types.Content{
				Data:    aws.String(subject),
				Charset: aws.String("UTF-8"),
			},
			Body: &types.Body{
				Text: &types.Content{
					Data:    aws.String(text),
					Charset: aws.String("UTF-8"),
				},
			},
		},
	}

	result, err := n.sender.SendEmail(ctx, input)
	if err != nil {
		return fmt.Errorf("SESでのメール送信に失敗しました: %w", err)
	}
	logger.Debug("リマインダーメールを送信しました",
		logger.EventID(r.Event.EventID),
		zap.String("message_id", aws.ToString(result.MessageId)),
	)
	return nil
}

// NoopNotifier は何も送らない
type NoopNotifier struct{}

func (NoopNotifier) SendReminder(_ context.Context, r reminder.Reminder) error {
	logger.Debug("リマインダーメールは送信されません（noop）", logger.EventID(r.Event.EventID))
	return nil
}

func renderReminder(r reminder.Reminder) (subject, text string) {
	subject = fmt.Sprintf("[リマインダー] %s がまもなく開催されます", r.Event.Title)
	text = fmt.Sprintf(
		"イベント: %s\n開催地: %s\n会場: %s\n開催時刻 (UTC): %s\n参加人数: %d\n開催まで: %d分\n",
		r.Event.Title,
		r.Event.Location,
		r.Event.Venue,
		r.Event.EventTime,
		r.Event.Participants,
		int(r.Remaining.Minutes()),
	)
	return subject, text
}
