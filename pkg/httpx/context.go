package httpx

type ctxKey string

// CtxKeyIdentity carries the authenticated caller identity, set by the
// session middleware. Absent for anonymous requests.
const CtxKeyIdentity ctxKey = "identity"
