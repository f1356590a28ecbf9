package bridge_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/stretchr/testify/assert"

	"github.com/slide-archive/histogramd/internal/adapter"
	"github.com/slide-archive/histogramd/internal/bridge"
	"github.com/slide-archive/histogramd/internal/domain"
	"github.com/slide-archive/histogramd/internal/logger"
	mockspkg "github.com/slide-archive/histogramd/internal/mocks"
)

func TestMain(m *testing.M) {
	// Initialize logger for tests
	err := logger.Initialize(logger.Config{
		Debug: false,
	})
	if err != nil {
		panic(err)
	}

	code := m.Run()
	os.Exit(code)
}

// testBridgeMocks contains all the mocks needed for testing the bridge
type testBridgeMocks struct {
	ctrl       *gomock.Controller
	natsJS     *mockspkg.MockNatsJetStream
	natsConn   *mockspkg.MockNatsConn
	jetStream  *mockspkg.MockJetStream
	reconciler *mockspkg.MockReconciler
}

// setupTestBridge creates all the mocks for testing
func setupTestBridge(t *testing.T) *testBridgeMocks {
	ctrl := gomock.NewController(t)

	return &testBridgeMocks{
		ctrl:       ctrl,
		natsJS:     mockspkg.NewMockNatsJetStream(ctrl),
		natsConn:   mockspkg.NewMockNatsConn(ctrl),
		jetStream:  mockspkg.NewMockJetStream(ctrl),
		reconciler: mockspkg.NewMockReconciler(ctrl),
	}
}

func tearDownTestBridge(mocks *testBridgeMocks) {
	mocks.ctrl.Finish()
}

func testConfig() bridge.Config {
	return bridge.Config{
		URL:            "nats://localhost:4222",
		StreamName:     "CMS_EVENTS",
		ConsumerName:   "histogram-event-bridge",
		MaxReconnects:  10,
		ReconnectWait:  1 * time.Second,
		ConnectionName: "test-bridge",
		AckWaitTimeout: 30 * time.Second,
		MaxDeliver:     5,
		PoolWorkers:    4,
		PoolQueueSize:  16,
	}
}

func TestBridge_NewBridge_Success(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	config := testConfig()

	mocks.natsJS.
		EXPECT().
		Connect(config.URL, gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(config, mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})

	assert.NoError(t, err)
	assert.NotNil(t, b)
}

func TestBridge_NewBridge_ConnectError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(nil, nil, assert.AnError)

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})

	assert.Error(t, err)
	assert.Nil(t, b)
	assert.Contains(t, err.Error(), "failed to connect to NATS")
}

func TestBridge_Run_CreateConsumerError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx := context.Background()
	config := testConfig()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(config, mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})
	assert.NoError(t, err)
	assert.NotNil(t, b)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(),
			"CMS_EVENTS",
			jetstream.ConsumerConfig{
				Durable:       config.ConsumerName,
				AckPolicy:     jetstream.AckExplicitPolicy,
				AckWait:       config.AckWaitTimeout,
				MaxDeliver:    config.MaxDeliver,
				FilterSubject: "cms.>",
			}).
		Return(nil, assert.AnError)

	err = b.Run(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create/update consumer")
}

func TestBridge_Run_ConsumerInfoError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx := context.Background()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})
	assert.NoError(t, err)

	consumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	consumer.EXPECT().
		Info(gomock.Any()).
		Return(nil, assert.AnError)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	err = b.Run(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to get consumer info")
}

func TestBridge_Run_ConsumeError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx := context.Background()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})
	assert.NoError(t, err)

	consumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	consumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: "histogram-event-bridge"}, nil)
	consumer.EXPECT().
		Consume(gomock.Any(), gomock.Any()).
		Return(nil, assert.AnError)

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	err = b.Run(ctx)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create subscription")
}

func TestBridge_Run_ContextCancellation(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx, cancel := context.WithCancel(context.Background())

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})
	assert.NoError(t, err)

	consumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	consumeContext := mockspkg.NewMockConsumeContext(mocks.ctrl)
	consumeContext.EXPECT().
		Stop().
		AnyTimes()

	consumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: "histogram-event-bridge"}, nil)
	consumer.EXPECT().
		Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, opts ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			go func() {
				cancel()
			}()
			return consumeContext, nil
		})

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	errChan := make(chan error, 1)
	go func() {
		errChan <- b.Run(ctx)
	}()

	select {
	case err := <-errChan:
		assert.Error(t, err)
		assert.Equal(t, context.Canceled, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Test timed out")
	}
}

// runWithHandler starts the bridge and returns the captured message
// handler so tests can push messages through it.
func runWithHandler(t *testing.T, mocks *testBridgeMocks, ctx context.Context, b bridge.Bridge) adapter.MessageHandler {
	t.Helper()

	handlerChan := make(chan adapter.MessageHandler, 1)
	consumer := mockspkg.NewMockNatsConsumer(mocks.ctrl)
	consumeContext := mockspkg.NewMockConsumeContext(mocks.ctrl)

	consumer.EXPECT().
		Info(gomock.Any()).
		Return(&jetstream.ConsumerInfo{Name: "histogram-event-bridge"}, nil)
	consumer.EXPECT().
		Consume(gomock.Any(), gomock.Any()).
		DoAndReturn(func(handler adapter.MessageHandler, opts ...jetstream.PullConsumeOpt) (adapter.ConsumeContext, error) {
			handlerChan <- handler
			return consumeContext, nil
		})
	consumeContext.EXPECT().Stop().AnyTimes()

	mocks.jetStream.
		EXPECT().
		CreateOrUpdateConsumer(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(consumer, nil)

	go func() { _ = b.Run(ctx) }()

	select {
	case handler := <-handlerChan:
		return handler
	case <-time.After(5 * time.Second):
		t.Fatal("Timed out waiting for consumer setup")
		return nil
	}
}

func TestBridge_ProcessMessage_UploadEvent(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})
	assert.NoError(t, err)

	eventJSON := []byte(`{"file":{"id":"file-1","itemId":"item-1"},"currentUser":"user-1","reference":"{\"isHistogram\":true,\"correlationToken\":\"token-1\"}"}`)

	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	msg.EXPECT().Subject().Return("cms.file.uploaded").MinTimes(1)
	msg.EXPECT().Data().Return(eventJSON).MinTimes(1)
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).MinTimes(1)

	handled := make(chan struct{})
	mocks.reconciler.
		EXPECT().
		HandleUploadComplete(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.UploadCompleteEvent) error {
			assert.Equal(t, "file-1", event.File.ID)
			assert.Equal(t, "user-1", event.UserID)
			return nil
		})
	msg.EXPECT().Ack().DoAndReturn(func() error {
		close(handled)
		return nil
	})

	handler := runWithHandler(t, mocks, ctx, b)
	handler(msg)

	select {
	case <-handled:
	case <-time.After(5 * time.Second):
		t.Fatal("Message was not acknowledged")
	}
}

func TestBridge_ProcessMessage_JobStatusEvent(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})
	assert.NoError(t, err)

	eventJSON := []byte(`{"jobId":"job-1","meta":{"creator":"histogram","task":"createHistogram"},"status":"error"}`)

	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	msg.EXPECT().Subject().Return("cms.job.status").MinTimes(1)
	msg.EXPECT().Data().Return(eventJSON).MinTimes(1)
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).MinTimes(1)

	handled := make(chan struct{})
	mocks.reconciler.
		EXPECT().
		HandleJobStatus(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, event *domain.JobStatusEvent) error {
			assert.Equal(t, "job-1", event.JobID)
			assert.Equal(t, domain.JobStatusError, event.Status)
			return nil
		})
	msg.EXPECT().Ack().DoAndReturn(func() error {
		close(handled)
		return nil
	})

	handler := runWithHandler(t, mocks, ctx, b)
	handler(msg)

	select {
	case <-handled:
	case <-time.After(5 * time.Second):
		t.Fatal("Message was not acknowledged")
	}
}

func TestBridge_ProcessMessage_InvalidJSON(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})
	assert.NoError(t, err)

	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	msg.EXPECT().Subject().Return("cms.item.removed").MinTimes(1)
	msg.EXPECT().Data().Return([]byte(`{invalid json}`)).MinTimes(1)
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).MinTimes(1)

	terminated := make(chan struct{})
	msg.EXPECT().Term().DoAndReturn(func() error {
		close(terminated)
		return nil
	})

	handler := runWithHandler(t, mocks, ctx, b)
	handler(msg)

	select {
	case <-terminated:
	case <-time.After(5 * time.Second):
		t.Fatal("Message was not terminated")
	}
}

func TestBridge_ProcessMessage_HandlerError(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})
	assert.NoError(t, err)

	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	msg.EXPECT().Subject().Return("cms.file.removed").MinTimes(1)
	msg.EXPECT().Data().Return([]byte(`{"fileId":"file-1"}`)).MinTimes(1)
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).MinTimes(1)

	mocks.reconciler.
		EXPECT().
		HandleFileRemoved(gomock.Any(), gomock.Any()).
		Return(assert.AnError)

	naked := make(chan struct{})
	msg.EXPECT().Nak().DoAndReturn(func() error {
		close(naked)
		return nil
	})

	handler := runWithHandler(t, mocks, ctx, b)
	handler(msg)

	select {
	case <-naked:
	case <-time.After(5 * time.Second):
		t.Fatal("Message was not NAKed")
	}
}

func TestBridge_ProcessMessage_ForeignSubject(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})
	assert.NoError(t, err)

	// Subjects this feature does not handle are acknowledged untouched.
	msg := mockspkg.NewMockJetStreamMessage(mocks.ctrl)
	msg.EXPECT().Subject().Return("cms.user.created").MinTimes(1)
	msg.EXPECT().Data().Return([]byte(`{}`)).AnyTimes()
	msg.EXPECT().Metadata().Return(&jetstream.MsgMetadata{NumDelivered: 1}, nil).MinTimes(1)

	acked := make(chan struct{})
	msg.EXPECT().Ack().DoAndReturn(func() error {
		close(acked)
		return nil
	})

	handler := runWithHandler(t, mocks, ctx, b)
	handler(msg)

	select {
	case <-acked:
	case <-time.After(5 * time.Second):
		t.Fatal("Message was not acknowledged")
	}
}

func TestBridge_Close(t *testing.T) {
	mocks := setupTestBridge(t)
	defer tearDownTestBridge(mocks)

	mocks.natsJS.
		EXPECT().
		Connect(gomock.Any(), gomock.Any()).
		Return(mocks.natsConn, mocks.jetStream, nil)

	mocks.natsConn.
		EXPECT().
		Close()

	b, err := bridge.NewBridge(testConfig(), mocks.natsJS, mocks.reconciler, &adapter.RealJSON{})
	assert.NoError(t, err)

	b.Close()
}
