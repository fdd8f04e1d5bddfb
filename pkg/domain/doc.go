/*
Package domain defines the values returned by an analysis and the error
taxonomy shared by the session, the codec and the facade.

Result values (TokenResult, Candidate) are immutable once returned: the caller
owns them and nothing inside the library keeps a reference.
*/
package domain
