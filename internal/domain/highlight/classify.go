package highlight

import (
	"strings"

	"github.com/corey/semhl/internal/ports"
)

// Category names a highlight bucket. Hosts map categories to visual styles.
type Category string

const (
	CategoryKeyword          Category = "Keyword"
	CategoryPunctuation      Category = "Punctuation"
	CategoryComment          Category = "Comment"
	CategoryStringLiteral    Category = "StringLiteral"
	CategoryCharacterLiteral Category = "CharacterLiteral"
	CategoryNumberLiteral    Category = "NumberLiteral"
	CategoryLiteral          Category = "Literal"

	CategoryType         Category = "Type"
	CategoryTypeRef      Category = "TypeRef"
	CategoryFunction     Category = "Function"
	CategoryFunctionCall Category = "FunctionCall"
	CategoryVariable     Category = "Variable"
	CategoryVariableRef  Category = "VariableRef"
	CategoryParameter    Category = "Parameter"
	CategoryMember       Category = "Member"
	CategoryEnumConstant Category = "EnumConstant"
	CategoryNamespace    Category = "Namespace"
	CategoryMacro        Category = "Macro"
	CategoryLabel        Category = "Label"

	// CategoryIdentifier is the fallback for identifiers the cursor kind
	// does not refine, and for token kinds the table does not know.
	CategoryIdentifier Category = "Identifier"
)

// Categories lists every category Classify can return, in a stable order.
var Categories = []Category{
	CategoryKeyword,
	CategoryPunctuation,
	CategoryComment,
	CategoryStringLiteral,
	CategoryCharacterLiteral,
	CategoryNumberLiteral,
	CategoryLiteral,
	CategoryType,
	CategoryTypeRef,
	CategoryFunction,
	CategoryFunctionCall,
	CategoryVariable,
	CategoryVariableRef,
	CategoryParameter,
	CategoryMember,
	CategoryEnumConstant,
	CategoryNamespace,
	CategoryMacro,
	CategoryLabel,
	CategoryIdentifier,
}

// tokenCategories is consulted first: these token kinds get a fixed
// category regardless of semantic context.
var tokenCategories = map[ports.TokenKind]Category{
	ports.TokenPunctuation: CategoryPunctuation,
	ports.TokenKeyword:     CategoryKeyword,
	ports.TokenComment:     CategoryComment,
}

// identifierCategories refines identifiers by their cursor kind.
var identifierCategories = map[ports.CursorKind]Category{
	ports.CursorStructDecl:                         CategoryType,
	ports.CursorUnionDecl:                          CategoryType,
	ports.CursorClassDecl:                          CategoryType,
	ports.CursorEnumDecl:                           CategoryType,
	ports.CursorTypedefDecl:                        CategoryType,
	ports.CursorTypeAliasDecl:                      CategoryType,
	ports.CursorTemplateTypeParameter:              CategoryType,
	ports.CursorClassTemplate:                      CategoryType,
	ports.CursorClassTemplatePartialSpecialization: CategoryType,
	ports.CursorTypeAliasTemplateDecl:              CategoryType,

	ports.CursorTypeRef:          CategoryTypeRef,
	ports.CursorTemplateRef:      CategoryTypeRef,
	ports.CursorCXXBaseSpecifier: CategoryTypeRef,

	ports.CursorFunctionDecl:       CategoryFunction,
	ports.CursorCXXMethod:          CategoryFunction,
	ports.CursorConstructor:        CategoryFunction,
	ports.CursorDestructor:         CategoryFunction,
	ports.CursorConversionFunction: CategoryFunction,
	ports.CursorFunctionTemplate:   CategoryFunction,

	ports.CursorCallExpr:          CategoryFunctionCall,
	ports.CursorOverloadedDeclRef: CategoryFunctionCall,

	ports.CursorVarDecl:     CategoryVariable,
	ports.CursorDeclRefExpr: CategoryVariableRef,
	ports.CursorVariableRef: CategoryVariableRef,

	ports.CursorParmDecl:                  CategoryParameter,
	ports.CursorNonTypeTemplateParameter:  CategoryParameter,
	ports.CursorTemplateTemplateParameter: CategoryParameter,

	ports.CursorFieldDecl:     CategoryMember,
	ports.CursorMemberRef:     CategoryMember,
	ports.CursorMemberRefExpr: CategoryMember,

	ports.CursorEnumConstantDecl: CategoryEnumConstant,

	ports.CursorNamespace:        CategoryNamespace,
	ports.CursorNamespaceRef:     CategoryNamespace,
	ports.CursorNamespaceAlias:   CategoryNamespace,
	ports.CursorUsingDirective:   CategoryNamespace,
	ports.CursorUsingDeclaration: CategoryNamespace,

	ports.CursorMacroDefinition: CategoryMacro,
	ports.CursorMacroExpansion:  CategoryMacro,

	ports.CursorLabelStmt: CategoryLabel,
	ports.CursorLabelRef:  CategoryLabel,
}

// Classify maps a token and its aligned cursor kind to a category. It never
// returns an empty category.
func Classify(tok ports.Token, cursor ports.CursorKind) Category {
	if cat, ok := tokenCategories[tok.Kind]; ok {
		return cat
	}
	switch tok.Kind {
	case ports.TokenLiteral:
		return classifyLiteral(tok.Spelling)
	case ports.TokenIdentifier:
		if cat, ok := identifierCategories[cursor]; ok {
			return cat
		}
	}
	return CategoryIdentifier
}

// classifyLiteral looks only at the spelling: u8"", L'x', R"(...)", 0x1F, .5
func classifyLiteral(spelling string) Category {
	if spelling == "" {
		return CategoryLiteral
	}
	if first := spelling[0]; isDigit(first) || (first == '.' && len(spelling) > 1 && isDigit(spelling[1])) {
		return CategoryNumberLiteral
	}

	body := strings.TrimLeft(spelling, "uUL8R")
	switch {
	case body == "":
		return CategoryLiteral
	case body[0] == '"':
		return CategoryStringLiteral
	case body[0] == '\'':
		return CategoryCharacterLiteral
	}
	return CategoryLiteral
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
