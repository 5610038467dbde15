// JSeF encoder and decoder
//
// JSeF is a small, human-editable text format for configuration-like data.
// a document is built from exactly three kinds of values: strings, ordered
// lists and ordered string-keyed dicts. there are no numbers, booleans or
// nulls; everything that is not a list or a dict is a string.
//
// examples:
//
//	key = value
//	list = [0 1 2 3]
//	"#" = "multiline\nvalue"   # special characters need quotes
//	dict = {
//		a = x
//		b = y
//	}
//	dict.a.oops = z            # path notation, replaces dict.a with {oops = z}
//
// path notation is destructive: writing a.b=x when a already holds a string
// or a list throws the old value away and replaces it with a new dict. when a
// already holds a dict, b is merged into it. duplicate keys are not reported,
// the last write wins.
//
// comments run from '#' to the end of the line and are discarded on parse.
//
// BNF:
//
//	<value>         :: <dict> | <list> | <quoted> | <word> ;
//
//	<dict>          :: "{" <skip> ( <pair> <skip> )* "}" ;
//	<root-dict>     :: <skip> ( <pair> <skip> )* ;
//	<pair>          :: <ident> <skip> ( "." <skip> <ident> <skip> )* "=" <skip> <value> ;
//	<ident>         :: <quoted> | <word> ;
//
//	<list>          :: "[" <skip> ( <value> <skip> )* "]" ;
//	<root-list>     :: <skip> ( <value> <skip> )* ;
//
//	<quoted>        :: "\"" ( <quoted-char> | <escape> )* "\"" ;
//	<quoted-char>   :: <any char except "\"" and "\\"> ;
//	<escape>        :: "\\" <any char> ;   \n \t \r \0 are translated, others are taken verbatim
//
//	<word>          :: <word-char>+ ;
//	<word-char>     :: <any char except whitespace and "\"" "=" "." "{" "}" "[" "]" "#"> ;
//
//	<skip>          :: ( <whitespace> | <comment> )* ;
//	<whitespace>    :: " " | "\t" | "\r" | "\n" ;
//	<comment>       :: "#" <any char except "\n">* ;
//
// the root of a list or dict document omits its brackets; see ParseList,
// ParseDict, ComposeList and ComposeDict.
package jsef
