package lexer

import (
	"testing"

	"github.com/devalang/deva/token"
)

// TestNextToken tests the functionality of the NextToken method in the Lexer to ensure all tokens are correctly identified.
func TestNextToken(t *testing.T) {
	input := `let five = 5;
let ten = 10;
def add(x, y) {
    return x + y;
}
let result = add(five, ten);
!-/*5;
5 < 10 > 5;
10 <= 10;
10 >= 10;

if (5 < 10) {
    return true;
} else {
    return false;
}

10 == 10;
10 != 9;
10 % 3;

"foobar"
"foo bar"
[1, 2];
{"foo": "bar"}
for i in v { print(i); }
class C { def init(self) { self.x = 1; } }
c = new C();
c.x;
null
`
	tests := []struct {
		expectedType    token.Type
		expectedLiteral string
	}{
		{token.Let, "let"},
		{token.Ident, "five"},
		{token.Assign, "="},
		{token.Int, "5"},
		{token.Semicolon, ";"},
		{token.Let, "let"},
		{token.Ident, "ten"},
		{token.Assign, "="},
		{token.Int, "10"},
		{token.Semicolon, ";"},
		{token.Function, "def"},
		{token.Ident, "add"},
		{token.Lparen, "("},
		{token.Ident, "x"},
		{token.Comma, ","},
		{token.Ident, "y"},
		{token.Rparen, ")"},
		{token.Lbrace, "{"},
		{token.Return, "return"},
		{token.Ident, "x"},
		{token.Plus, "+"},
		{token.Ident, "y"},
		{token.Semicolon, ";"},
		{token.Rbrace, "}"},
		{token.Let, "let"},
		{token.Ident, "result"},
		{token.Assign, "="},
		{token.Ident, "add"},
		{token.Lparen, "("},
		{token.Ident, "five"},
		{token.Comma, ","},
		{token.Ident, "ten"},
		{token.Rparen, ")"},
		{token.Semicolon, ";"},
		{token.Bang, "!"},
		{token.Minus, "-"},
		{token.Slash, "/"},
		{token.Asterisk, "*"},
		{token.Int, "5"},
		{token.Semicolon, ";"},
		{token.Int, "5"},
		{token.Lt, "<"},
		{token.Int, "10"},
		{token.Gt, ">"},
		{token.Int, "5"},
		{token.Semicolon, ";"},
		{token.Int, "10"},
		{token.Lte, "<="},
		{token.Int, "10"},
		{token.Semicolon, ";"},
		{token.Int, "10"},
		{token.Gte, ">="},
		{token.Int, "10"},
		{token.Semicolon, ";"},
		{token.If, "if"},
		{token.Lparen, "("},
		{token.Int, "5"},
		{token.Lt, "<"},
		{token.Int, "10"},
		{token.Rparen, ")"},
		{token.Lbrace, "{"},
		{token.Return, "return"},
		{token.True, "true"},
		{token.Semicolon, ";"},
		{token.Rbrace, "}"},
		{token.Else, "else"},
		{token.Lbrace, "{"},
		{token.Return, "return"},
		{token.False, "false"},
		{token.Semicolon, ";"},
		{token.Rbrace, "}"},
		{token.Int, "10"},
		{token.Eq, "=="},
		{token.Int, "10"},
		{token.Semicolon, ";"},
		{token.Int, "10"},
		{token.NotEq, "!="},
		{token.Int, "9"},
		{token.Semicolon, ";"},
		{token.Int, "10"},
		{token.Percent, "%"},
		{token.Int, "3"},
		{token.Semicolon, ";"},
		{token.String, "foobar"},
		{token.String, "foo bar"},
		{token.Lbracket, "["},
		{token.Int, "1"},
		{token.Comma, ","},
		{token.Int, "2"},
		{token.Rbracket, "]"},
		{token.Semicolon, ";"},
		{token.Lbrace, "{"},
		{token.String, "foo"},
		{token.Colon, ":"},
		{token.String, "bar"},
		{token.Rbrace, "}"},
		{token.For, "for"},
		{token.Ident, "i"},
		{token.In, "in"},
		{token.Ident, "v"},
		{token.Lbrace, "{"},
		{token.Ident, "print"},
		{token.Lparen, "("},
		{token.Ident, "i"},
		{token.Rparen, ")"},
		{token.Semicolon, ";"},
		{token.Rbrace, "}"},
		{token.Class, "class"},
		{token.Ident, "C"},
		{token.Lbrace, "{"},
		{token.Function, "def"},
		{token.Ident, "init"},
		{token.Lparen, "("},
		{token.Ident, "self"},
		{token.Rparen, ")"},
		{token.Lbrace, "{"},
		{token.Ident, "self"},
		{token.Dot, "."},
		{token.Ident, "x"},
		{token.Assign, "="},
		{token.Int, "1"},
		{token.Semicolon, ";"},
		{token.Rbrace, "}"},
		{token.Rbrace, "}"},
		{token.Ident, "c"},
		{token.Assign, "="},
		{token.New, "new"},
		{token.Ident, "C"},
		{token.Lparen, "("},
		{token.Rparen, ")"},
		{token.Semicolon, ";"},
		{token.Ident, "c"},
		{token.Dot, "."},
		{token.Ident, "x"},
		{token.Semicolon, ";"},
		{token.Null, "null"},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok := l.NextToken()

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - tokentype wrong. expected=%q, got=%q (literal %q)",
				i, tt.expectedType, tok.Type, tok.Literal)
		}

		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d] - literal wrong. expected=%q, got=%q",
				i, tt.expectedLiteral, tok.Literal)
		}
	}
}

func TestReadNumberWithFraction(t *testing.T) {
	l := New("3.14 + 2")
	tok := l.NextToken()
	if tok.Type != token.Int || tok.Literal != "3.14" {
		t.Fatalf("expected number literal 3.14, got %q %q", tok.Type, tok.Literal)
	}
}

func TestSkipsLineComments(t *testing.T) {
	l := New("1 // a comment\n+ 2")
	first := l.NextToken()
	if first.Literal != "1" {
		t.Fatalf("expected 1, got %q", first.Literal)
	}
	second := l.NextToken()
	if second.Type != token.Plus {
		t.Fatalf("expected +, got %q", second.Type)
	}
}
