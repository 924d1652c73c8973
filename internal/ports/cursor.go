package ports

import "fmt"

// CursorKind is the semantic classification the frontend attaches to a
// source position. Values match CXCursorKind so adapters convert by cast;
// only the kinds the classifier distinguishes are named here.
type CursorKind int

// Declarations.
const (
	CursorUnexposedDecl                      CursorKind = 1
	CursorStructDecl                         CursorKind = 2
	CursorUnionDecl                          CursorKind = 3
	CursorClassDecl                          CursorKind = 4
	CursorEnumDecl                           CursorKind = 5
	CursorFieldDecl                          CursorKind = 6
	CursorEnumConstantDecl                   CursorKind = 7
	CursorFunctionDecl                       CursorKind = 8
	CursorVarDecl                            CursorKind = 9
	CursorParmDecl                           CursorKind = 10
	CursorTypedefDecl                        CursorKind = 20
	CursorCXXMethod                          CursorKind = 21
	CursorNamespace                          CursorKind = 22
	CursorLinkageSpec                        CursorKind = 23
	CursorConstructor                        CursorKind = 24
	CursorDestructor                         CursorKind = 25
	CursorConversionFunction                 CursorKind = 26
	CursorTemplateTypeParameter              CursorKind = 27
	CursorNonTypeTemplateParameter           CursorKind = 28
	CursorTemplateTemplateParameter          CursorKind = 29
	CursorFunctionTemplate                   CursorKind = 30
	CursorClassTemplate                      CursorKind = 31
	CursorClassTemplatePartialSpecialization CursorKind = 32
	CursorNamespaceAlias                     CursorKind = 33
	CursorUsingDirective                     CursorKind = 34
	CursorUsingDeclaration                   CursorKind = 35
	CursorTypeAliasDecl                      CursorKind = 36
	CursorCXXAccessSpecifier                 CursorKind = 39
)

// References.
const (
	CursorTypeRef           CursorKind = 43
	CursorCXXBaseSpecifier  CursorKind = 44
	CursorTemplateRef       CursorKind = 45
	CursorNamespaceRef      CursorKind = 46
	CursorMemberRef         CursorKind = 47
	CursorLabelRef          CursorKind = 48
	CursorOverloadedDeclRef CursorKind = 49
	CursorVariableRef       CursorKind = 50
)

// Invalid cursors.
const (
	CursorInvalidFile    CursorKind = 70
	CursorNoDeclFound    CursorKind = 71
	CursorNotImplemented CursorKind = 72
	CursorInvalidCode    CursorKind = 73
)

// Expressions.
const (
	CursorUnexposedExpr     CursorKind = 100
	CursorDeclRefExpr       CursorKind = 101
	CursorMemberRefExpr     CursorKind = 102
	CursorCallExpr          CursorKind = 103
	CursorIntegerLiteral    CursorKind = 106
	CursorFloatingLiteral   CursorKind = 107
	CursorStringLiteral     CursorKind = 109
	CursorCharacterLiteral  CursorKind = 110
	CursorBinaryOperator    CursorKind = 114
	CursorCXXBoolLiteral    CursorKind = 130
	CursorCXXNullPtrLiteral CursorKind = 131
)

// Statements, translation unit, preprocessing and late declarations.
const (
	CursorUnexposedStmt          CursorKind = 200
	CursorLabelStmt              CursorKind = 201
	CursorCompoundStmt           CursorKind = 202
	CursorDeclStmt               CursorKind = 231
	CursorTranslationUnit        CursorKind = 350
	CursorUnexposedAttr          CursorKind = 400
	CursorPreprocessingDirective CursorKind = 500
	CursorMacroDefinition        CursorKind = 501
	CursorMacroExpansion         CursorKind = 502
	CursorInclusionDirective     CursorKind = 503
	CursorModuleImportDecl       CursorKind = 600
	CursorTypeAliasTemplateDecl  CursorKind = 601
	CursorStaticAssert           CursorKind = 602
)

var cursorKindNames = map[CursorKind]string{
	CursorUnexposedDecl:                      "UnexposedDecl",
	CursorStructDecl:                         "StructDecl",
	CursorUnionDecl:                          "UnionDecl",
	CursorClassDecl:                          "ClassDecl",
	CursorEnumDecl:                           "EnumDecl",
	CursorFieldDecl:                          "FieldDecl",
	CursorEnumConstantDecl:                   "EnumConstantDecl",
	CursorFunctionDecl:                       "FunctionDecl",
	CursorVarDecl:                            "VarDecl",
	CursorParmDecl:                           "ParmDecl",
	CursorTypedefDecl:                        "TypedefDecl",
	CursorCXXMethod:                          "CXXMethod",
	CursorNamespace:                          "Namespace",
	CursorLinkageSpec:                        "LinkageSpec",
	CursorConstructor:                        "Constructor",
	CursorDestructor:                         "Destructor",
	CursorConversionFunction:                 "ConversionFunction",
	CursorTemplateTypeParameter:              "TemplateTypeParameter",
	CursorNonTypeTemplateParameter:           "NonTypeTemplateParameter",
	CursorTemplateTemplateParameter:          "TemplateTemplateParameter",
	CursorFunctionTemplate:                   "FunctionTemplate",
	CursorClassTemplate:                      "ClassTemplate",
	CursorClassTemplatePartialSpecialization: "ClassTemplatePartialSpecialization",
	CursorNamespaceAlias:                     "NamespaceAlias",
	CursorUsingDirective:                     "UsingDirective",
	CursorUsingDeclaration:                   "UsingDeclaration",
	CursorTypeAliasDecl:                      "TypeAliasDecl",
	CursorCXXAccessSpecifier:                 "CXXAccessSpecifier",
	CursorTypeRef:                            "TypeRef",
	CursorCXXBaseSpecifier:                   "CXXBaseSpecifier",
	CursorTemplateRef:                        "TemplateRef",
	CursorNamespaceRef:                       "NamespaceRef",
	CursorMemberRef:                          "MemberRef",
	CursorLabelRef:                           "LabelRef",
	CursorOverloadedDeclRef:                  "OverloadedDeclRef",
	CursorVariableRef:                        "VariableRef",
	CursorInvalidFile:                        "InvalidFile",
	CursorNoDeclFound:                        "NoDeclFound",
	CursorNotImplemented:                     "NotImplemented",
	CursorInvalidCode:                        "InvalidCode",
	CursorUnexposedExpr:                      "UnexposedExpr",
	CursorDeclRefExpr:                        "DeclRefExpr",
	CursorMemberRefExpr:                      "MemberRefExpr",
	CursorCallExpr:                           "CallExpr",
	CursorIntegerLiteral:                     "IntegerLiteral",
	CursorFloatingLiteral:                    "FloatingLiteral",
	CursorStringLiteral:                      "StringLiteral",
	CursorCharacterLiteral:                   "CharacterLiteral",
	CursorBinaryOperator:                     "BinaryOperator",
	CursorCXXBoolLiteral:                     "CXXBoolLiteralExpr",
	CursorCXXNullPtrLiteral:                  "CXXNullPtrLiteralExpr",
	CursorUnexposedStmt:                      "UnexposedStmt",
	CursorLabelStmt:                          "LabelStmt",
	CursorCompoundStmt:                       "CompoundStmt",
	CursorDeclStmt:                           "DeclStmt",
	CursorTranslationUnit:                    "TranslationUnit",
	CursorUnexposedAttr:                      "UnexposedAttr",
	CursorPreprocessingDirective:             "PreprocessingDirective",
	CursorMacroDefinition:                    "MacroDefinition",
	CursorMacroExpansion:                     "MacroExpansion",
	CursorInclusionDirective:                 "InclusionDirective",
	CursorModuleImportDecl:                   "ModuleImportDecl",
	CursorTypeAliasTemplateDecl:              "TypeAliasTemplateDecl",
	CursorStaticAssert:                       "StaticAssert",
}

func (k CursorKind) String() string {
	if name, ok := cursorKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("CursorKind(%d)", int(k))
}

// IsInvalid reports whether k is one of the frontend's invalid-cursor kinds.
func (k CursorKind) IsInvalid() bool {
	return k >= CursorInvalidFile && k <= CursorInvalidCode
}
