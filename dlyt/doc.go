// Package dlyt provides a client for the dlyt video transcription and speech
// synthesis API.
//
// Every call goes through Client.Request, which attaches the session token as
// a "token" header and the user identity as an "identity" query parameter,
// then applies two checks to the reply: the HTTP status must be in the
// 200-399 range, and a JSON body must not carry a failing business code.
// The business code is read from the first present field among status, code
// and errno; only 0, 200 and 20000 mean success. A body without any of those
// fields is a success.
//
// A failed call produces exactly one error notification and returns an
// *APIError whose message is the one shown to the user.
//
// Basic usage:
//
//	store := authstore.New(storage, logger)
//	client, err := dlyt.NewClient("http://127.0.0.1:9005/api", store, sink, logger)
//	if err != nil {
//		return err
//	}
//
//	profile, err := client.Profile(ctx)
//	if err != nil {
//		return err
//	}
//
// The typed helpers unwrap a top-level "data" member when the server wraps
// its reply in one.
package dlyt
