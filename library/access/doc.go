// Package access turns HS256 bearer tokens into a core.Actor.
//
// Identity management lives elsewhere; the tokens carry the user id in "sub" and the staff flag
// in "is_staff". The middleware puts the actor into the request context. A request without a token
// is anonymous, the use cases decide whether that is enough. A request with a bad token is rejected.
package access
