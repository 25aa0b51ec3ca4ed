package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"checkinly-be/internal/dto"
	"checkinly-be/internal/pkg/mailer"
	"checkinly-be/internal/repository/specification"
	"checkinly-be/internal/repository/unitofwork"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/skip2/go-qrcode"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the email-job topic: receipts, refund notices
// and arrival guides are sent off the request path.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	uowFactory   unitofwork.RepositoryFactory
	emailService mailer.IEmailService
	publicURL    string
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	emailService mailer.IEmailService,
	publicURL string,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		uowFactory:   uowFactory,
		emailService: emailService,
		publicURL:    publicURL,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	var job dto.EmailJobMessage
	if err := json.Unmarshal(msg.Payload, &job); err != nil {
		log.Printf("[ERROR] Failed to unmarshal email job: %v", err)
		msg.Ack() // malformed jobs are never going to succeed
		return
	}

	var err error
	switch job.Kind {
	case dto.EmailJobDepositReceipt:
		err = cs.sendDepositReceipt(ctx, job)
	case dto.EmailJobRefundNotice:
		err = cs.sendRefundNotice(ctx, job)
	case dto.EmailJobArrivalGuide:
		err = cs.sendArrivalGuide(ctx, job)
	default:
		log.Printf("[WARN] Unknown email job kind %q", job.Kind)
		msg.Ack()
		return
	}

	if err != nil {
		log.Printf("[ERROR] Email job %s failed: %v", job.Kind, err)
		msg.Nack()
		return
	}

	msg.Ack()
}

func (cs *consumerService) sendDepositReceipt(ctx context.Context, job dto.EmailJobMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	deposit, err := uow.DepositRepository().FindOne(ctx, specification.ByID{ID: job.DepositId})
	if err != nil {
		return err
	}
	if deposit == nil {
		return nil // deleted in the meantime, nothing to send
	}

	guest, err := uow.GuestRepository().FindOne(ctx, specification.ByID{ID: deposit.GuestId})
	if err != nil {
		return err
	}
	if guest == nil || guest.Email == "" {
		return nil
	}

	property, err := uow.PropertyRepository().FindOne(ctx, specification.ByID{ID: deposit.PropertyId})
	if err != nil {
		return err
	}
	propertyName := "your accommodation"
	if property != nil {
		propertyName = property.Name
	}

	return cs.emailService.SendDepositReceipt(guest.Email, guest.FullName, deposit.Amount, deposit.Currency, propertyName)
}

func (cs *consumerService) sendRefundNotice(ctx context.Context, job dto.EmailJobMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	deposit, err := uow.DepositRepository().FindOne(ctx, specification.ByID{ID: job.DepositId})
	if err != nil {
		return err
	}
	if deposit == nil {
		return nil
	}

	guest, err := uow.GuestRepository().FindOne(ctx, specification.ByID{ID: deposit.GuestId})
	if err != nil {
		return err
	}
	if guest == nil || guest.Email == "" {
		return nil
	}

	return cs.emailService.SendRefundNotice(guest.Email, guest.FullName, job.RefundAmount, job.Remaining, deposit.Currency)
}

func (cs *consumerService) sendArrivalGuide(ctx context.Context, job dto.EmailJobMessage) error {
	uow := cs.uowFactory.NewUnitOfWork(ctx)

	guide, err := uow.GuideRepository().FindOne(ctx, specification.ByID{ID: job.GuideId})
	if err != nil {
		return err
	}
	if guide == nil {
		return nil
	}

	guest, err := uow.GuestRepository().FindOne(ctx, specification.ByID{ID: job.GuestId})
	if err != nil {
		return err
	}
	if guest == nil || guest.Email == "" {
		return nil
	}

	property, err := uow.PropertyRepository().FindOne(ctx, specification.ByID{ID: guide.PropertyId})
	if err != nil {
		return err
	}
	propertyName := "your accommodation"
	if property != nil {
		propertyName = property.Name
	}

	shareURL := fmt.Sprintf("%s/guides/%s", cs.publicURL, guide.ShareToken)

	qrPNG, err := qrcode.Encode(shareURL, qrcode.Medium, 256)
	if err != nil {
		// Still send the link if QR generation fails.
		qrPNG = nil
	}

	return cs.emailService.SendArrivalGuide(guest.Email, guest.FullName, propertyName, shareURL, qrPNG)
}
