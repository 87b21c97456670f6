package web

// Inline pages, styled after the original application.
const pagesTemplate = `
{{define "head"}}
<!DOCTYPE html>
<html lang="fr">
<head>
<meta charset="utf-8">
<title>Analyse d'Avis Client</title>
<style>
    body { font-family: 'Arial', sans-serif; background-color: #f4f4f4; margin: 0; padding: 20px; }
    h1 { color: #4CAF50; text-align: center; }
    .card { background: white; border-radius: 8px; padding: 20px; max-width: 860px; margin: 0 auto 20px; box-shadow: 0 1px 3px rgba(0,0,0,0.15); }
    input[type=text], input[type=password], textarea, select { width: 100%; padding: 8px; margin: 6px 0 12px; box-sizing: border-box; }
    button { background-color: #4CAF50; color: white; border: none; border-radius: 5px; padding: 10px 20px; cursor: pointer; transition: 0.3s; }
    button:hover { background-color: #45a049; }
    button.danger { background-color: #c0392b; }
    table { border-collapse: collapse; width: 100%; }
    th, td { border: 1px solid #ddd; padding: 8px; text-align: left; vertical-align: top; }
    th { background-color: #4CAF50; color: white; }
    .banner { border-radius: 5px; padding: 12px; margin-bottom: 15px; }
    .banner.success { background: #e8f5e9; color: #2e7d32; }
    .banner.error { background: #fdecea; color: #c0392b; }
    .banner.info { background: #e3f2fd; color: #1565c0; }
    .banner.warning { background: #fff8e1; color: #b26a00; }
    .nav a { margin-right: 12px; }
    .nav a.active { font-weight: bold; }
    .pages a { margin-right: 6px; }
    .pages strong { margin-right: 6px; }
    iframe { border: none; width: 100%; height: 420px; }
</style>
</head>
<body>
<h1>Analyse d'Avis Client 🌟</h1>
{{end}}

{{define "foot"}}
</body>
</html>
{{end}}

{{define "home"}}
{{template "head"}}
<div class="card">
    <h2>Sélectionnez votre profil :</h2>
    <p><a href="/client">Client</a> — soumettre un avis</p>
    <p><a href="/admin">Admin</a> — tableau de bord et statistiques</p>
</div>
{{template "foot"}}
{{end}}

{{define "client"}}
{{template "head"}}
<div class="card">
    <h2>Soumettez votre avis 📝</h2>
    {{with .Banner}}<div class="banner {{.Kind}}">{{.Text}}</div>{{end}}
    <form method="post" action="/client">
        <label>Entrez votre ID :</label>
        <input type="text" name="user_id" value="{{.UserID}}">
        <label>Écrivez votre avis ici :</label>
        <textarea name="comment" rows="5">{{.Comment}}</textarea>
        <button type="submit">Soumettre</button>
    </form>
</div>
{{template "foot"}}
{{end}}

{{define "login"}}
{{template "head"}}
<div class="card">
    <h2>Authentification Admin</h2>
    {{with .Banner}}<div class="banner {{.Kind}}">{{.Text}}</div>{{end}}
    <form method="post" action="/admin/login">
        <label>Nom d'utilisateur</label>
        <input type="text" name="username">
        <label>Mot de passe</label>
        <input type="password" name="password">
        <button type="submit">Se connecter</button>
    </form>
</div>
{{template "foot"}}
{{end}}

{{define "adminNav"}}
<div class="card nav">
    <h2>Bienvenue dans l'espace Admin 🛠️</h2>
    <a href="/admin" {{if not .StatsView}}class="active"{{end}}>Tableau de bord</a>
    <a href="/admin?vue=stats" {{if .StatsView}}class="active"{{end}}>Analyse des statistiques</a>
</div>
{{end}}

{{define "dashboard"}}
{{template "head"}}
{{template "adminNav" .}}
<div class="card">
    <h2>Tableau de bord des avis 📊</h2>
    {{with .Banner}}<div class="banner {{.Kind}}">{{.Text}}</div>{{end}}
    {{if .SkippedWarning}}<div class="banner warning">{{.SkippedWarning}}</div>{{end}}
    <form method="get" action="/admin">
        <label>Filtrer par sentiment :</label>
        <select name="filtre" onchange="this.form.submit()">
            {{$current := .Filter}}
            {{range .Filters}}<option value="{{.}}" {{if eq . $current}}selected{{end}}>{{.}}</option>{{end}}
        </select>
        <noscript><button type="submit">Filtrer</button></noscript>
    </form>
    {{if .Rows}}
    <table>
        <tr><th>#</th><th>ID Utilisateur</th><th>Commentaire</th><th>Sentiment</th><th></th></tr>
        {{range .Rows}}
        <tr>
            <td>{{.Seq}}</td>
            <td>{{.UserID}}</td>
            <td>{{.Comment}}</td>
            <td>{{.Sentiment}}</td>
            <td>
                <form method="post" action="/admin/delete">
                    <input type="hidden" name="index" value="{{.AbsIndex}}">
                    <input type="hidden" name="filtre" value="{{$.Filter}}">
                    <input type="hidden" name="page" value="{{$.Page}}">
                    <button type="submit" class="danger">Supprimer</button>
                </form>
            </td>
        </tr>
        {{end}}
    </table>
    <p class="pages">
        Page :
        {{range .Pages}}
            {{if eq . $.Page}}<strong>{{.}}</strong>{{else}}<a href="/admin?filtre={{$.Filter}}&page={{.}}">{{.}}</a>{{end}}
        {{end}}
    </p>
    <p><a href="/admin/export"><button type="button">Télécharger l'historique en CSV</button></a></p>
    {{else}}
    <div class="banner info">Aucun avis soumis pour l'instant.</div>
    {{end}}
</div>
{{template "foot"}}
{{end}}

{{define "stats"}}
{{template "head"}}
{{template "adminNav" .}}
<div class="card">
    <h2>Statistiques et graphiques 📈</h2>
    {{if .Snapshot.Counts}}
    <table>
        <tr><th>Sentiment</th><th>Nombre d'avis</th><th>Pourcentage</th></tr>
        {{range .Snapshot.Counts}}
        <tr><td>{{.Label}}</td><td>{{.Count}}</td><td>{{printf "%.2f" .Percent}}%</td></tr>
        {{end}}
        <tr><td><strong>Total</strong></td><td><strong>{{.Snapshot.Total}}</strong></td><td></td></tr>
    </table>
    <h3>Distribution des sentiments</h3>
    <iframe src="/admin/charts/pie"></iframe>
    <h3>Nombre d'avis par sentiment</h3>
    <iframe src="/admin/charts/bar"></iframe>
    {{else}}
    <div class="banner info">Aucune donnée disponible pour les statistiques.</div>
    {{end}}
</div>
{{template "foot"}}
{{end}}
`
