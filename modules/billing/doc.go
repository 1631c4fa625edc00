// Package billing is the HTTP module that shows an owner's subscription
// panel and runs its edit flow over DataStar event streams.
//
// Routes, relative to the mount point:
//
//	GET    /                     owner index
//	GET    /{ownerID}            panel page, or the card alone for DataStar requests
//	GET    /{ownerID}/watch      card re-rendered on every change
//	POST   /{ownerID}/edit       edit flow; prompt, dialogs and alerts arrive on this stream
//	POST   /prompts/{promptID}   answer with ?choice=N
//	DELETE /prompts/{promptID}   dismiss
//
// A prompt is answered by a different request than the one waiting for it;
// the prompt.Broker connects the two. Labels come from the embedded
// translations, negotiated per request from ?lang= and Accept-Language.
package billing
