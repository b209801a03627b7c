package di

import (
	"context"
	"errors"
	"testing"

	"github.com/goliatone/go-sitecms/internal/docstore"
	"github.com/goliatone/go-sitecms/internal/revalidate"
	"github.com/goliatone/go-sitecms/internal/runtimeconfig"
)

type fakeModel struct{}

func (fakeModel) Generate(context.Context, string) (string, error) {
	return "A short description.", nil
}

func newTestConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Provider = "noop"
	cfg.Auth.Provider = runtimeconfig.AuthStatic
	cfg.Auth.StaticToken = "dev-token"
	return cfg
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := newTestConfig()
	cfg.Store.Provider = "redis"
	if _, err := NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrStoreProviderUnknown) {
		t.Fatalf("expected ErrStoreProviderUnknown, got %v", err)
	}
}

func TestContainerWiresSettingsToDispatcher(t *testing.T) {
	ctx := context.Background()
	extra := revalidate.NewRecorder(10)
	container, err := NewContainer(newTestConfig(), WithSink(extra))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if _, ok := container.Store().(*docstore.MemoryStore); !ok {
		t.Fatalf("expected memory store by default, got %T", container.Store())
	}

	contact := container.Site().Contact
	if _, err := contact.Update(ctx, contact.Defaults()); err != nil {
		t.Fatalf("update contact: %v", err)
	}
	if len(container.Revalidations().Events()) != 1 {
		t.Fatalf("expected built-in recorder to capture the update, got %+v", container.Revalidations().Events())
	}
	if len(extra.Events()) != 1 {
		t.Fatalf("expected extra sink to receive the update, got %+v", extra.Events())
	}
}

func TestContainerServicesShareStore(t *testing.T) {
	ctx := context.Background()
	store := docstore.NewMemoryStore()
	container, err := NewContainer(newTestConfig(), WithStore(store))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.CheckoutService() == nil || container.InquiryService() == nil {
		t.Fatal("expected checkout and inquiry services")
	}

	if _, err := container.TransferService().Import(ctx, []byte(`{"faqs":[{"id":"f1","question":"Q?","answer":"A."}]}`)); err != nil {
		t.Fatalf("import: %v", err)
	}
	if _, err := store.Get(ctx, "faqs", "f1"); err != nil {
		t.Fatalf("expected imported faq in shared store: %v", err)
	}
	events := container.Revalidations().Events()
	if len(events) != 1 || events[0].ContentType != revalidate.Import {
		t.Fatalf("expected one import marker, got %+v", events)
	}
}

func TestContainerAuthAndMetaGeneration(t *testing.T) {
	ctx := context.Background()
	container, err := NewContainer(newTestConfig())
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if container.MetaGenerator() != nil {
		t.Fatal("expected no meta generator without an api key")
	}
	principal, err := container.TokenVerifier().Verify(ctx, "dev-token")
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if !container.AuthorizationPolicy().IsAuthorized(principal) {
		t.Fatalf("expected static principal %+v to be an admin", principal)
	}

	withModel, err := NewContainer(newTestConfig(), WithTextGenerator(fakeModel{}))
	if err != nil {
		t.Fatalf("NewContainer: %v", err)
	}
	if withModel.MetaGenerator() == nil {
		t.Fatal("expected meta generator when a model is supplied")
	}
}
