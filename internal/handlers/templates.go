package handlers

import "html/template"

// Server-rendered pages. html/template escapes interpolated values, so the
// preserved username and error strings are safe to echo.
var pageTemplates = template.Must(template.New("pages").Parse(`
{{define "login"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Login - EyeStyle</title>
    <meta name="viewport" content="width=device-width, initial-scale=1">
</head>
<body>
<div class="login-container">
    <h2>Login to Your Account</h2>
    {{if .Error}}<div class="error-message">{{.Error}}</div>{{end}}
    <form method="post" action="/login" autocomplete="off" novalidate>
        <div class="form-group">
            <label for="username">Username or Email</label>
            <input type="text" id="username" name="username" required maxlength="50" autofocus value="{{.Username}}">
        </div>
        <div class="form-group">
            <label for="password">Password</label>
            <input type="password" id="password" name="password" required maxlength="100">
        </div>
        <button type="submit" class="login-btn">Login</button>
    </form>
</div>
</body>
</html>{{end}}

{{define "dashboard"}}<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <title>Dashboard - EyeStyle</title>
</head>
<body>
<div class="dashboard">
    <h2>Welcome, {{.Username}}</h2>
    <a href="/logout" class="logout-btn">Log out</a>
</div>
</body>
</html>{{end}}
`))
