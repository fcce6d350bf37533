// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package mail

import (
	"context"

	gomail "github.com/wneessen/go-mail"
)

// WithDeliverFunc swaps the SMTP transport for tests.
func (s *SMTPSender) WithDeliverFunc(deliver func(ctx context.Context, message *gomail.Msg) error) *SMTPSender {
	s.deliver = deliver
	return s
}
