package inquiries_test

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/inquiries"
	"github.com/goliatone/go-sitecms/internal/notify"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/site"
)

func newService(t *testing.T) (*inquiries.Service, *site.Site, *notify.Outbox, *revalidate.Recorder) {
	t.Helper()
	recorder := revalidate.NewRecorder(0)
	s := site.New(docstore.NewMemoryStore(), site.WithNotifier(revalidate.NewDispatcher(revalidate.WithSink(recorder))))
	outbox := notify.NewOutbox()
	return inquiries.NewService(s, inquiries.WithMailer(outbox), inquiries.WithAppName("Studio")), s, outbox, recorder
}

func TestSubmitStoresAndNotifies(t *testing.T) {
	svc, s, outbox, recorder := newService(t)
	ctx := context.Background()

	saved, err := svc.Submit(ctx, inquiries.Form{Name: "Ravi", Email: "ravi@mail.test", Budget: "50k", Message: "Need a site"})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if saved.ID == "" || saved.Phone != nil || saved.Budget == nil || *saved.Budget != "50k" {
		t.Fatalf("unexpected submission %+v", saved)
	}

	messages := outbox.Messages()
	if len(messages) != 2 {
		t.Fatalf("expected two emails, got %d", len(messages))
	}
	if messages[0].To != s.Contact.Defaults().Email || messages[0].Subject != "New Contact Form Submission from Ravi" {
		t.Fatalf("unexpected admin email %+v", messages[0])
	}
	if messages[1].To != "ravi@mail.test" || messages[1].Subject != "Thank you for contacting Studio" {
		t.Fatalf("unexpected reply %+v", messages[1])
	}
	if len(recorder.Events()) != 1 || recorder.Events()[0].ContentType != revalidate.Submissions {
		t.Fatalf("expected one submissions revalidation, got %+v", recorder.Events())
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("expected one submission, got %v (%v)", list, err)
	}
	if err := svc.Delete(ctx, saved.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if list, _ = svc.List(ctx); len(list) != 0 {
		t.Fatalf("expected empty list after delete")
	}
}

func TestSubmitRejectsInvalidForm(t *testing.T) {
	svc, _, outbox, _ := newService(t)
	_, err := svc.Submit(context.Background(), inquiries.Form{Name: "Ravi", Email: "nope", Message: "hi"})
	if inquiries.PublicMessage(err) != inquiries.MessageInvalidForm {
		t.Fatalf("expected invalid form, got %v", err)
	}
	if len(outbox.Messages()) != 0 {
		t.Fatalf("no email for invalid forms")
	}
}

func TestMailFailureIsSwallowed(t *testing.T) {
	svc, _, outbox, _ := newService(t)
	outbox.FailWith(errors.New("relay down"))
	if _, err := svc.Submit(context.Background(), inquiries.Form{Name: "Ravi", Email: "ravi@mail.test", Message: "hello"}); err != nil {
		t.Fatalf("mail failure leaked: %v", err)
	}
}
