/*
File    : gomix-pseudo/internal/eval/eval_test.go
Author  : Akash Maji
Contact : akashmaji(@iisc.ac.in)
*/
package eval

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/akashmaji946/gomix-pseudo/internal/builtins"
	"github.com/akashmaji946/gomix-pseudo/internal/lexer"
	"github.com/akashmaji946/gomix-pseudo/internal/parser"
	"github.com/akashmaji946/gomix-pseudo/internal/values"
)

// runSource lexes, parses, and evaluates src with stdin fed from input,
// returning everything print wrote plus the final value and eval error.
func runSource(t *testing.T, src, input string) (string, values.Value, error) {
	t.Helper()
	toks, err := lexer.Tokenize(src)
	require.NoError(t, err)
	prog, err := parser.Parse(toks)
	require.NoError(t, err)

	var out bytes.Buffer
	in := strings.NewReader(input)
	ev := New(&out, in, builtins.New(&out, in))
	result, evalErr := ev.Run(prog)
	return out.String(), result, evalErr
}

func mustRun(t *testing.T, src string) string {
	t.Helper()
	out, _, err := runSource(t, src, "")
	require.NoError(t, err)
	return out
}

func TestArithmeticPrecedence(t *testing.T) {
	assert.Equal(t, "14\n", mustRun(t, "x = 2 + 3 * 4\nprint(x)\n"))
	assert.Equal(t, "-4\n", mustRun(t, "print(1 - 2 - 3)\n"))
	assert.Equal(t, "20\n", mustRun(t, "print((2 + 3) * 4)\n"))
}

func TestDivisionAlwaysYieldsFloat(t *testing.T) {
	assert.Equal(t, "2.5\n", mustRun(t, "print(5 / 2)\n"))
	assert.Equal(t, "2\n", mustRun(t, "print(5 div 2)\n"))
	assert.Equal(t, "1\n", mustRun(t, "print(5 mod 2)\n"))
}

func TestUnaryMinusAndNot(t *testing.T) {
	assert.Equal(t, "-7\n", mustRun(t, "x = -7\nprint(x)\n"))
	assert.Equal(t, "false\n", mustRun(t, "print(not true)\n"))
	assert.Equal(t, "true\n", mustRun(t, "print(not 0)\n"))
}

func TestStringConcatenation(t *testing.T) {
	assert.Equal(t, "ab\n", mustRun(t, "print(\"a\" + \"b\")\n"))
}

func TestComparisonsAreTotalOnNumbers(t *testing.T) {
	assert.Equal(t, "true\n", mustRun(t, "print(1 < 2)\n"))
	assert.Equal(t, "false\n", mustRun(t, "print(1 > 2)\n"))
	assert.Equal(t, "true\n", mustRun(t, "print(2 == 2)\n"))
	assert.Equal(t, "true\n", mustRun(t, "print(1 != 2)\n"))
}

func TestMixedKindOrderingIsTypeError(t *testing.T) {
	_, _, err := runSource(t, "x = 1 < \"a\"\n", "")
	assert.Error(t, err)
	var typeErr *values.TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestEqualityAcrossKindsIsFalseNotError(t *testing.T) {
	assert.Equal(t, "false\n", mustRun(t, "print(1 == \"1\")\n"))
	assert.Equal(t, "true\n", mustRun(t, "print(1 != \"1\")\n"))
}

func TestArrayDeclareIndexAssign(t *testing.T) {
	src := "array a[3] = [1, 2, 3]\na[1] = 9\nprint(a[1])\n"
	assert.Equal(t, "9\n", mustRun(t, src))
}

func TestArrayDefaultsToNulls(t *testing.T) {
	assert.Equal(t, "null\n", mustRun(t, "array a[2]\nprint(a[0])\n"))
}

func TestArrayLengthMismatchIsValueError(t *testing.T) {
	_, _, err := runSource(t, "array a[2] = [1, 2, 3]\n", "")
	assert.Error(t, err)
	var valErr *values.ValueError
	assert.ErrorAs(t, err, &valErr)
}

func TestArrayIndexOutOfRange(t *testing.T) {
	_, _, err := runSource(t, "array a[2]\nprint(a[5])\n", "")
	assert.Error(t, err)
	var idxErr *values.IndexError
	assert.ErrorAs(t, err, &idxErr)
}

func TestStringIndexRead(t *testing.T) {
	assert.Equal(t, "e\n", mustRun(t, "s = \"hello\"\nprint(s[1])\n"))
}

func TestListAliasingThroughAssignment(t *testing.T) {
	src := "array a[2] = [1, 2]\nb = a\nb[0] = 99\nprint(a[0])\n"
	assert.Equal(t, "99\n", mustRun(t, src))
}

func TestConstCannotBeReassigned(t *testing.T) {
	_, _, err := runSource(t, "const x = 5\nx = 6\n", "")
	assert.Error(t, err)
	var valErr *values.ValueError
	assert.ErrorAs(t, err, &valErr)
}

func TestConstArrayCannotBeMutated(t *testing.T) {
	_, _, err := runSource(t, "const a = [1, 2]\na[0] = 9\n", "")
	assert.Error(t, err)
}

func TestIfElseifElse(t *testing.T) {
	src := "if 1 < 2 then\nprint(\"a\")\nelse\nprint(\"b\")\nendif\n"
	assert.Equal(t, "a\n", mustRun(t, src))

	src = "x = 5\nif x < 1 then\nprint(\"low\")\nelseif x < 10 then\nprint(\"mid\")\nelse\nprint(\"high\")\nendif\n"
	assert.Equal(t, "mid\n", mustRun(t, src))
}

func TestIfWithNoMatchingBranchFallsThrough(t *testing.T) {
	assert.Equal(t, "", mustRun(t, "if 1 > 2 then\nprint(\"never\")\nendif\n"))
}

func TestForLoopCountsUpToLimitExclusive(t *testing.T) {
	assert.Equal(t, "0\n1\n2\n", mustRun(t, "for i = 0 to 3\nprint(i)\nnext i\n"))
}

func TestForLoopWithStep(t *testing.T) {
	assert.Equal(t, "0\n2\n4\n", mustRun(t, "for i = 0 to 6 step 2\nprint(i)\nnext i\n"))
}

func TestWhileLoop(t *testing.T) {
	src := "x = 0\nwhile x < 3\nprint(x)\nx = x + 1\nendwhile\n"
	assert.Equal(t, "0\n1\n2\n", mustRun(t, src))
}

func TestFunctionCallAndReturn(t *testing.T) {
	src := "function sq(n)\nreturn n * n\nendfunction\nprint(sq(7))\n"
	assert.Equal(t, "49\n", mustRun(t, src))
}

func TestProcedureReturnsNull(t *testing.T) {
	src := "procedure greet(who)\nprint(\"hi \" + who)\nendprocedure\nx = greet(\"you\")\nprint(x)\n"
	assert.Equal(t, "hi you\nnull\n", mustRun(t, src))
}

func TestFunctionArityMismatchIsRuntimeError(t *testing.T) {
	_, _, err := runSource(t, "function f(a, b)\nreturn a\nendfunction\nf(1)\n", "")
	assert.Error(t, err)
	var rtErr *values.RuntimeError
	assert.ErrorAs(t, err, &rtErr)
}

func TestCallingNonCallableIsTypeError(t *testing.T) {
	_, _, err := runSource(t, "x = 1\nx(2)\n", "")
	assert.Error(t, err)
	var typeErr *values.TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestLocalAssignmentNotVisibleInCaller(t *testing.T) {
	src := "function f()\nlocal = 1\nreturn local\nendfunction\nf()\nprint(local)\n"
	_, _, err := runSource(t, src, "")
	assert.Error(t, err)
	var nameErr *values.NameError
	assert.ErrorAs(t, err, &nameErr)
}

func TestLexicalScopingResolvesDefiningEnvironment(t *testing.T) {
	// getx must see the global x (its defining scope), not wrapper's
	// parameter, which dynamic scoping would have resolved instead.
	src := "x = 1\n" +
		"function getx()\nreturn x\nendfunction\n" +
		"function wrapper(x)\nreturn getx()\nendfunction\n" +
		"print(wrapper(99))\n"
	assert.Equal(t, "1\n", mustRun(t, src))
}

func TestGlobalAssignmentFromInsideFunction(t *testing.T) {
	src := "procedure bump()\nglobal counter = 7\nendprocedure\nbump()\nprint(counter)\n"
	assert.Equal(t, "7\n", mustRun(t, src))
}

func TestStringMethodsAndAttributes(t *testing.T) {
	src := "s = \"hello\"\nprint(s.upper())\nprint(s.length)\n"
	assert.Equal(t, "HELLO\n5\n", mustRun(t, src))
}

func TestUpperLowerAreIdempotent(t *testing.T) {
	src := "s = \"MiXeD\"\nprint(s.upper().upper() == s.upper())\nprint(s.lower().lower() == s.lower())\n"
	assert.Equal(t, "true\ntrue\n", mustRun(t, src))
}

func TestSubstringLeftRight(t *testing.T) {
	src := "s = \"pseudocode\"\nprint(s.substring(0, 6))\nprint(s.left(3))\nprint(s.right(4))\n"
	assert.Equal(t, "pseudo\npse\ncode\n", mustRun(t, src))
}

func TestSplitDefaultsToSpace(t *testing.T) {
	src := "parts = \"a b c\".split()\nprint(parts.length)\nprint(parts[2])\n"
	assert.Equal(t, "3\nc\n", mustRun(t, src))
}

func TestListMethodsThroughEvaluator(t *testing.T) {
	src := "array a[2] = [3, 1]\na.append(2)\na.sort()\nprint(a)\n"
	assert.Equal(t, "[1, 2, 3]\n", mustRun(t, src))
}

func TestListSliceThroughEvaluator(t *testing.T) {
	src := "array a[5] = [0, 1, 2, 3, 4]\nprint(a.slice(1, 2))\n"
	assert.Equal(t, "[1, 2]\n", mustRun(t, src))
}

func TestUnknownMethodOnStringIsTypeError(t *testing.T) {
	_, _, err := runSource(t, "s = \"hi\"\ns.reverse()\n", "")
	assert.Error(t, err)
	var typeErr *values.TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestUnknownAttributeOnListIsTypeError(t *testing.T) {
	_, _, err := runSource(t, "a = [1]\nprint(a.size)\n", "")
	assert.Error(t, err)
	var typeErr *values.TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestMethodOnNumberIsTypeError(t *testing.T) {
	_, _, err := runSource(t, "x = 1\nx.upper()\n", "")
	assert.Error(t, err)
	var typeErr *values.TypeError
	assert.ErrorAs(t, err, &typeErr)
}

func TestUnknownNameIsNameError(t *testing.T) {
	_, _, err := runSource(t, "print(nope)\n", "")
	assert.Error(t, err)
	var nameErr *values.NameError
	assert.ErrorAs(t, err, &nameErr)
}

func TestTypeCasts(t *testing.T) {
	assert.Equal(t, "12\n", mustRun(t, "print(int(\"12\"))\n"))
	assert.Equal(t, "3\n", mustRun(t, "print(int(3.9))\n"))
	assert.Equal(t, "1.5\n", mustRun(t, "print(float(\"1.5\"))\n"))
	assert.Equal(t, "7\n", mustRun(t, "print(str(7))\n"))
	assert.Equal(t, "false\n", mustRun(t, "print(bool(\"\"))\n"))
}

func TestUncoercibleCastIsError(t *testing.T) {
	_, _, err := runSource(t, "int(\"twelve\")\n", "")
	assert.Error(t, err)
}

func TestAscChr(t *testing.T) {
	assert.Equal(t, "65\n", mustRun(t, "print(ASC(\"A\"))\n"))
	assert.Equal(t, "A\n", mustRun(t, "print(CHR(65))\n"))
}

func TestRandomStaysInBounds(t *testing.T) {
	src := "for i = 0 to 20\nn = random(3, 5)\nif n < 3 then\nprint(\"bad\")\nendif\nif n > 5 then\nprint(\"bad\")\nendif\nnext i\n"
	assert.Equal(t, "", mustRun(t, src))
}

func TestInputReadsOneLine(t *testing.T) {
	out, _, err := runSource(t, "name = input(\"? \")\nprint(\"hi \" + name)\n", "world\n")
	require.NoError(t, err)
	assert.Equal(t, "? hi world\n", out)
}

func TestNoneLiteralAndTruthiness(t *testing.T) {
	assert.Equal(t, "null\n", mustRun(t, "print(None)\n"))
	assert.Equal(t, "no\n", mustRun(t, "if None then\nprint(\"yes\")\nelse\nprint(\"no\")\nendif\n"))
}

func TestFileWriteLinesFlushOnClose(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.txt")
	src := "f = newFile(\"" + path + "\")\n" +
		"f.writeLine(\"first\")\n" +
		"f.writeLine(\"second\")\n" +
		"f.close()\n"
	mustRun(t, src)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond", string(data))
}

func TestFileReadLineAndEOF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.txt")
	require.NoError(t, os.WriteFile(path, []byte("x\ny\n"), 0644))

	src := "f = open(\"" + path + "\")\nprint(f.readLine())\nprint(f.readLine())\n"
	assert.Equal(t, "x\ny\n", mustRun(t, src))

	src = "f = open(\"" + path + "\")\nf.readLine()\nf.readLine()\nf.readLine()\n"
	_, _, err := runSource(t, src, "")
	assert.Error(t, err)
	var eofErr *values.EOFError
	assert.ErrorAs(t, err, &eofErr)
}

func TestReplStyleSharedEnvironmentAcrossRuns(t *testing.T) {
	var out bytes.Buffer
	in := strings.NewReader("")
	ev := New(&out, in, builtins.New(&out, in))

	for _, line := range []string{"x = 41\n", "x = x + 1\n", "print(x)\n"} {
		toks, err := lexer.Tokenize(line)
		require.NoError(t, err)
		prog, err := parser.Parse(toks)
		require.NoError(t, err)
		_, err = ev.RunIn(prog, ev.Global)
		require.NoError(t, err)
	}
	assert.Equal(t, "42\n", out.String())
}
