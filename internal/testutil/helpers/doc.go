// Package helpers provides shared test helpers.
//
// # Available Helpers
//
//   - NewObservableLogger: a logger.Logger backed by zap's observer core
//   - FakeClock: records sleeps instead of waiting, for retry/backoff tests
//
// # Example
//
//	func TestResolve(t *testing.T) {
//	    log, recorded := helpers.NewObservableLogger(zapcore.DebugLevel)
//	    clock := helpers.NewFakeClock()
//	    // ...
//	    assert.Len(t, clock.Sleeps(), 4)
//	    assert.NotEmpty(t, helpers.Messages(recorded, zapcore.WarnLevel))
//	}
package helpers
