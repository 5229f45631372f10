package observability

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/yungbote/wardrobe-backend/internal/platform/ctxutil"
)

func TestParseHeaders(t *testing.T) {
	got := ParseHeaders(" api-key = secret ,broken, =x,team=wardrobe")
	if len(got) != 2 || got["api-key"] != "secret" || got["team"] != "wardrobe" {
		t.Fatalf("ParseHeaders: got=%v", got)
	}
	if ParseHeaders("") != nil {
		t.Fatalf("ParseHeaders(empty): want nil")
	}
}

func TestStartSpanTagsRequestIdentity(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	uid, sid := uuid.New(), uuid.New()
	ctx := ctxutil.WithTraceData(context.Background(), &ctxutil.TraceData{RequestID: "req-7"})
	ctx = ctxutil.WithRequestData(ctx, &ctxutil.RequestData{UserID: uid, SessionID: sid})

	_, span := StartSpan(ctx, "outfit.rate", attribute.Int("outfit.rating", 4))
	EndSpan(span, errors.New("outfit already rated"))

	ended := rec.Ended()
	if len(ended) != 1 {
		t.Fatalf("ended spans: want 1 got=%d", len(ended))
	}
	attrs := map[attribute.Key]attribute.Value{}
	for _, kv := range ended[0].Attributes() {
		attrs[kv.Key] = kv.Value
	}
	if attrs["http.request_id"].AsString() != "req-7" {
		t.Fatalf("request id attr: got=%v", attrs["http.request_id"])
	}
	if attrs["enduser.id"].AsString() != uid.String() || attrs["wardrobe.session_id"].AsString() != sid.String() {
		t.Fatalf("identity attrs: got=%v", attrs)
	}
	if attrs["outfit.rating"].AsInt64() != 4 {
		t.Fatalf("rating attr: got=%v", attrs["outfit.rating"])
	}
	if ended[0].Status().Code != codes.Error {
		t.Fatalf("status: want error got=%v", ended[0].Status())
	}
}

func TestEndSpanWithoutErrorLeavesStatusUnset(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)))
	t.Cleanup(func() { otel.SetTracerProvider(prev) })

	_, span := StartSpan(context.Background(), "outfit.generate")
	EndSpan(span, nil)
	if got := rec.Ended()[0].Status().Code; got != codes.Unset {
		t.Fatalf("status: want unset got=%v", got)
	}
}
