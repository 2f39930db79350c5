// Package errors provides the structured error type used across realm-api.
//
// Every layer returns *errors.Error values carrying a Code, a user facing
// Message, an optional Cause and free-form Meta. The game rules attach a named
// failure condition under the "reason" meta key so callers can tell apart two
// failures that share a code:
//
//	return errors.FailedPrecondition("nothing equipped in slot").
//	    WithReason(custody.ReasonNotEquipped).
//	    WithMeta("slot", slot)
//
// Wrapping keeps the original code and meta:
//
//	if err != nil {
//	    return errors.Wrap(err, "failed to load guild")
//	}
//
// Checking:
//
//	if errors.IsConflict(err) && errors.GetReason(err) == custody.ReasonAlreadySold {
//	    // listing was bought first
//	}
//
// # Codes used by the game rules
//
//   - NotFound: character, guild or listing does not exist
//   - FailedPrecondition: the entity is not in a state that allows the operation
//     (guild full, closed guild, no class chosen, empty slot, ...)
//   - PermissionDenied: the actor has no rights over the target
//   - Conflict: the target reached a terminal state (listing already sold)
//   - Aborted: optimistic version check failed, safe to retry
//   - InvalidArgument: malformed input
//
// # Layer guidelines
//
// Repositories return NotFound/AlreadyExists/Aborted and wrap storage failures.
// The engine packages return precondition errors and never log.
// Orchestrators wrap with business context and retry Aborted commits.
// Handlers convert with ToGRPCError.
package errors
