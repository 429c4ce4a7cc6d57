/*
Package card holds the payment card store of a user session.

A Store owns an ordered collection of cards and exposes three asynchronous
operations and two synchronous resets:

	store := card.NewStore(card.NewSimulatedBackend())

	// Add a card; the first card added to an empty collection becomes default
	c, err := store.AddCard(ctx, models.CardFormData{CardNumber: "4111 1111 1111 1111"})

	// Flag another card as default; every other card loses the flag
	_, err = store.SetDefaultCard(ctx, c.ID)

	// Remove a card; unknown ids are not an error
	_, err = store.RemoveCard(ctx, c.ID)

	store.ClearError()
	store.ClearCards()

Lifecycle:

Each asynchronous operation moves through pending, then fulfilled or rejected.
Pending sets the operation's flag (IsSubmitting for add, IsLoading for remove and
set-default) and clears the error. Fulfilled applies the mutation and resets the flag.
Rejected resets the flag and records the failure message in State.Error. Failures are
also returned to the caller as *errors.DomainError values.

Concurrency:

Operations may be in flight at the same time. Each mutation is applied atomically, but
the flags are plain booleans, so an operation finishing can reset a flag another one of
the same family still needs. The first-card-default rule is checked when an add is
fulfilled: under concurrent adds the card whose backend call returns first becomes the
default. Neither hazard is corrected here.

Operations cannot be cancelled. The backend call is detached from the caller's
cancellation and always runs to completion.

Error Handling:

  - ValidationError: card number shorter than 16 characters once whitespace is stripped
  - OperationFailure: anything else, with the backend's message or a per-kind default
*/
package card
