/*
Package protocol implements the line-oriented wire format spoken with the
mystem worker.

A request is one sanitized line of text. A response is one line holding a JSON
array of token objects:

	[{"text":"Связался","analysis":[{"lex":"связываться","wt":1,"gr":"V,pf,intr=praet,sg,indic,m"}]}]

The codec is deliberately lenient about the envelope: scalar fields are
coerced to their expected types, a missing "wt" means weight 1.0 and a missing
"analysis" means no candidates. A line that is not an array of objects yields
a *domain.ResponseDecodeError.
*/
package protocol
