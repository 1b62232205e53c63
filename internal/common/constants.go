package common

// AccessTokenHeaderName is the HTTP header carrying the session credential.
// The name is fixed by the API contract.
const AccessTokenHeaderName = "x-access-token"
