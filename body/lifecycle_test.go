package body_test

import (
	"testing"

	"github.com/edaniels/golog"
	"github.com/pkg/errors"
	"go.viam.com/test"

	"github.com/gomanoid/core/body"
	"github.com/gomanoid/core/testutils"
	"github.com/gomanoid/core/testutils/inject"
)

func TestNewBodyEngineFailure(t *testing.T) {
	logger := golog.NewTestLogger(t)
	engine := &inject.Engine{Engine: testutils.NewFakeEngine()}
	engine.AddBodyFunc = func(name string) (body.Handle, error) {
		return 0, errors.New("engine is full")
	}

	_, err := body.NewBody(engine, "doomed", logger)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "doomed")
	test.That(t, err.Error(), test.ShouldContainSubstring, "engine is full")
}

func TestCloseReportsEngineError(t *testing.T) {
	logger := golog.NewTestLogger(t)
	fake := testutils.NewFakeEngine()
	engine := &inject.Engine{Engine: fake}

	b, err := body.NewBody(engine, "flaky", logger)
	test.That(t, err, test.ShouldBeNil)

	removeCalls := 0
	engine.RemoveBodyFunc = func(h body.Handle) error {
		removeCalls++
		return errors.New("handle already gone")
	}

	err = b.Close()
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "flaky")

	// even after a failed release the body does not retry: the engine must
	// never see a second removal for the same handle
	test.That(t, b.Close(), test.ShouldBeNil)
	test.That(t, removeCalls, test.ShouldEqual, 1)
}

func TestCloseAllCombinesErrors(t *testing.T) {
	logger := golog.NewTestLogger(t)
	fake := testutils.NewFakeEngine()
	engine := &inject.Engine{Engine: fake}

	a, err := body.NewBody(engine, "a", logger)
	test.That(t, err, test.ShouldBeNil)
	b, err := body.NewBody(engine, "b", logger)
	test.That(t, err, test.ShouldBeNil)

	engine.RemoveBodyFunc = func(h body.Handle) error {
		if h == a.Handle() {
			return errors.New("stuck")
		}
		return fake.RemoveBody(h)
	}

	err = body.CloseAll(a, b)
	test.That(t, err, test.ShouldNotBeNil)
	test.That(t, err.Error(), test.ShouldContainSubstring, "a")
	// the failure on one body does not prevent releasing the other
	test.That(t, fake.NumBodies(), test.ShouldEqual, 1)
}
