// Package async provides generic helpers for running computations asynchronously and
// waiting for their completion.
//
// Future represents the eventual result of an asynchronous operation. Async starts the
// supplied function in its own goroutine and immediately returns a *Future. The caller
// can wait with Await, AwaitContext or AwaitWithTimeout, poll with IsComplete, select on
// Done, or register a callback with OnComplete. WaitAll collects the results of several
// futures.
//
// Latest runs supersede-able tasks: each call to Go cancels the previous task's context
// and only the newest task's result reaches its deliver callback. This is the building
// block for refetching data when an input (such as the current locale) changes faster
// than requests complete.
//
// # Usage
//
//	future := async.Async(ctx, 42, func(_ context.Context, v int) (string, error) {
//		return fmt.Sprintf("value is %d", v), nil
//	})
//	res, err := future.Await()
//
//	var latest async.Latest[[]Post]
//	latest.Go(ctx, fetchFrench, func(posts []Post, err error) {
//		// only called if no newer fetch was started meanwhile
//	})
//
// # Error Handling
//
// Futures complete with the error returned by the callback, the context error when the
// context was already done before the callback ran, ErrTimeout from AwaitWithTimeout,
// or ErrSuperseded for tasks replaced by a newer Latest task.
package async
