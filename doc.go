/*
Package texpect compares actual program output against a golden text file.
A golden file is the expected output verbatim, except that parts which are
allowed to vary between runs (timestamps, ports, hashes) are written as
regexp fragments delimited by '<' and '>':

	connected to localhost:<\d+>
	session id <[0-9a-f]{8}>
	bye

Everything outside a fragment only matches its exact text, regexp
metacharacters included. Everything inside a fragment is regexp source and
is handed to the regexp engine without any escaping. A fragment must not be
empty and must be closed on the same line. There is no escape character, so
expected output containing a literal '<' has to spell it as the fragment
<[<]>. A bare '>' outside a fragment is ordinary text.

# Matching

The out text is read completely and then consumed front to back. Each
golden line, including its line terminator, is compiled into a pattern
and matched anchored at the start of the not yet consumed out text. On a
match the matched prefix is consumed and the next golden line follows. The
first golden line that does not match ends the comparison and is reported
with its 0-based line number; out text left over after the last golden line
is reported as trailing content.

Patterns are compiled so that '.' inside a fragment also matches line
terminators and '^'/'$' refer to the whole remaining out text. A fragment
like [\s\S]* can therefore span several out lines if authored that way,
though ordinary usage keeps fragments within one line.

Matching follows standard greedy regexp semantics and never backtracks
across golden lines. A line ending in a greedy fragment such as <.*> can
consume text that belongs to the next golden line; the mismatch is then
reported on the following line rather than the truly offending one. Write
trailing fragments precisely to keep diagnostics exact.

# Command Line

The texpect command compares two files and is silent on success:

	texpect expected.texpect actual.out

It exits 0 when every golden line matched and nothing was left over, and 1
with a diagnostic on stderr otherwise. The --selftest flag runs a built-in
verification suite instead of comparing files.

Package texpecting supports the use of texpect in Go tests, with golden
files kept under testdata.
*/
package texpect
