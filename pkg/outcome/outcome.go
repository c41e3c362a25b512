// Package outcome provides a two-case success/failure envelope used as the
// uniform contract between orchestrating services and their collaborators.
// Expected failures travel inside an Outcome; panics are reserved for
// programming faults such as reading the wrong branch.
package outcome

import (
	"errors"
	"fmt"
)

// Outcome holds either a value (success) or an error (failure), never both.
// The zero value is a failure with a generic error; construct instances via
// Ok, Fail or Failf.
type Outcome[T any] struct {
	value T
	err   error
	ok    bool
}

// Ok returns a successful Outcome wrapping value.
func Ok[T any](value T) Outcome[T] {
	return Outcome[T]{value: value, ok: true}
}

// Fail returns a failed Outcome wrapping err. A nil err is itself a
// programming fault and is replaced with a descriptive error rather than
// producing a success.
func Fail[T any](err error) Outcome[T] {
	if err == nil {
		err = errors.New("outcome: Fail called with nil error")
	}
	return Outcome[T]{err: err}
}

// Failf returns a failed Outcome with a formatted error. The format string
// supports %w wrapping so sentinel errors remain matchable with errors.Is.
func Failf[T any](format string, args ...any) Outcome[T] {
	return Fail[T](fmt.Errorf(format, args...))
}

// IsSuccess reports whether the Outcome holds a value.
func (o Outcome[T]) IsSuccess() bool { return o.ok }

// IsFailure reports whether the Outcome holds an error.
func (o Outcome[T]) IsFailure() bool { return !o.ok }

// Value returns the wrapped value. Calling Value on a failure is a
// programming fault and panics; callers must branch on IsSuccess first or use
// Get.
func (o Outcome[T]) Value() T {
	if !o.ok {
		panic(fmt.Sprintf("outcome: Value called on failure: %v", o.err))
	}
	return o.value
}

// Err returns the wrapped error. Calling Err on a success is a programming
// fault and panics; callers must branch on IsFailure first or use Get.
func (o Outcome[T]) Err() error {
	if o.ok {
		panic("outcome: Err called on success")
	}
	if o.err == nil {
		// Zero-value Outcome: still a failure, still reportable.
		return errors.New("outcome: zero value")
	}
	return o.err
}

// Get unpacks the Outcome into the conventional (value, error) pair. It never
// panics and is the bridge for call sites that prefer plain error handling.
func (o Outcome[T]) Get() (T, error) {
	if o.ok {
		return o.value, nil
	}
	var zero T
	if o.err == nil {
		return zero, errors.New("outcome: zero value")
	}
	return zero, o.err
}

// OnSuccess applies fn to the value of a successful Outcome and returns the
// transformed result. Failures pass through untouched. A panic inside fn is
// recovered and converted into a failure, so chaining never raises.
func (o Outcome[T]) OnSuccess(fn func(T) T) (out Outcome[T]) {
	if !o.ok {
		return o
	}
	defer func() {
		if r := recover(); r != nil {
			out = Failf[T]("outcome: transform panicked: %v", r)
		}
	}()
	return Ok(fn(o.value))
}

// OnFailure invokes fn with the error of a failed Outcome, for logging or
// side effects, and returns the Outcome unchanged. A panic inside fn is
// recovered and discarded so the original failure is preserved.
func (o Outcome[T]) OnFailure(fn func(error)) Outcome[T] {
	if o.ok {
		return o
	}
	func() {
		defer func() { _ = recover() }()
		fn(o.err)
	}()
	return o
}

// Map transforms a successful Outcome[T] into an Outcome[U]. Failures carry
// over with their original error. A panic inside fn is recovered and
// converted into a failure.
func Map[T, U any](o Outcome[T], fn func(T) U) (out Outcome[U]) {
	if !o.ok {
		return Fail[U](o.Err())
	}
	defer func() {
		if r := recover(); r != nil {
			out = Failf[U]("outcome: transform panicked: %v", r)
		}
	}()
	return Ok(fn(o.value))
}

// Then chains a successful Outcome[T] into a fallible next step. Failures
// short-circuit. A panic inside fn is recovered and converted into a failure.
func Then[T, U any](o Outcome[T], fn func(T) Outcome[U]) (out Outcome[U]) {
	if !o.ok {
		return Fail[U](o.Err())
	}
	defer func() {
		if r := recover(); r != nil {
			out = Failf[U]("outcome: transform panicked: %v", r)
		}
	}()
	return fn(o.value)
}

// Unit is the value type for outcomes of operations that produce no data,
// such as deletes and status updates.
type Unit struct{}

// Done returns a successful Outcome[Unit].
func Done() Outcome[Unit] {
	return Ok(Unit{})
}
