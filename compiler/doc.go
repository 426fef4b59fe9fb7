/*

Process of compilation

WizuAll Text ->
	parse ->
Abstract Syntax Tree (ast) ->
	resolve imports ->
Abstract Syntax Tree (ast) ->
	analyze ->
Requirements (imports and helpers) ->
	back ->
Python Script

Abstract Syntax Tree (ast) ->
	format ->
WizuAll Text

*/
package compiler
